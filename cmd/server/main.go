package main

import (
	_ "github.com/eleven-am/voice-console/docs"
	"github.com/eleven-am/voice-console/internal/bootstrap"
)

// @title Voice Console API
// @version 1.0.0
// @description Browser console for starting and watching voice assistant calls, plus the end-of-call backend it reads results from

// @BasePath /

func main() {
	bootstrap.Run()
}
