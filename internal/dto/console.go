package dto

type TokenResponse struct {
	Token    string `json:"token"`
	URL      string `json:"url" example:"wss://livekit.example.com"`
	Room     string `json:"room" example:"call_123"`
	Identity string `json:"identity" example:"listener_5f0c"`
}
