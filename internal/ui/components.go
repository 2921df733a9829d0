package ui

import (
	"fmt"
	"math"

	"github.com/eleven-am/voice-console/internal/callstate"
)

const volumeBars = 10

// VolumeLevel shows a 0..1 volume as ten bars and a two-decimal value.
// Values outside the range are clamped for display only.
type VolumeLevel struct {
	Volume float64
}

func (v VolumeLevel) clamped() float64 {
	switch {
	case math.IsNaN(v.Volume), v.Volume < 0:
		return 0
	case v.Volume > 1:
		return 1
	}
	return v.Volume
}

func (v VolumeLevel) Bars() []bool {
	vol := v.clamped()
	bars := make([]bool, volumeBars)
	for i := range bars {
		bars[i] = float64(i)/volumeBars < vol
	}
	return bars
}

func (v VolumeLevel) Display() string {
	return fmt.Sprintf("%.2f", v.clamped())
}

type AssistantVoiceVisualizer struct {
	IsSpeaking  bool
	VolumeLevel float64
}

func (a AssistantVoiceVisualizer) IndicatorClass() string {
	if a.IsSpeaking {
		return "speaking"
	}
	return "not-speaking"
}

type UserVoiceVisualizer struct {
	Volume float64
}

func (u UserVoiceVisualizer) Level() VolumeLevel {
	return VolumeLevel{Volume: u.Volume}
}

type ActiveCallDetails struct {
	AssistantIsSpeaking bool
	VolumeLevel         float64
	EndCallAction       string
}

func (a ActiveCallDetails) Assistant() AssistantVoiceVisualizer {
	return AssistantVoiceVisualizer{IsSpeaking: a.AssistantIsSpeaking, VolumeLevel: a.VolumeLevel}
}

func (a ActiveCallDetails) User() UserVoiceVisualizer {
	return UserVoiceVisualizer{Volume: a.VolumeLevel}
}

type Actions struct {
	Start   string
	EndCall string
}

var DefaultActions = Actions{Start: "/call/start", EndCall: "/call/stop"}

// App renders exactly one view for a snapshot.
type App struct {
	Snapshot callstate.Snapshot
	Actions  Actions
}

func (a App) ShowStart() bool {
	return a.Snapshot.View == callstate.ViewStart
}

func (a App) ShowLoading() bool {
	return a.Snapshot.View == callstate.ViewLoading
}

func (a App) ShowResult() bool {
	return a.Snapshot.View == callstate.ViewResult && a.Snapshot.CallResult != nil
}

func (a App) ShowActiveCall() bool {
	return a.Snapshot.View == callstate.ViewActiveCall
}

func (a App) LoadingResult() bool {
	return a.Snapshot.LoadingResult
}

func (a App) Qualified() bool {
	if a.Snapshot.CallResult == nil {
		return false
	}
	return a.Snapshot.CallResult.Analysis.StructuredData.IsQualified
}

func (a App) Summary() string {
	if a.Snapshot.CallResult == nil {
		return ""
	}
	return a.Snapshot.CallResult.Summary
}

func (a App) ActiveCall() ActiveCallDetails {
	return ActiveCallDetails{
		AssistantIsSpeaking: a.Snapshot.AssistantIsSpeaking,
		VolumeLevel:         a.Snapshot.VolumeLevel,
		EndCallAction:       a.Actions.EndCall,
	}
}

type Page struct {
	Title     string
	App       App
	EventsURL string
	ViewURL   string
	TokenURL  string
}
