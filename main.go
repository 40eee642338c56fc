package main

import (
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"readingrabbit/internal/logger"
	"readingrabbit/models"
	"readingrabbit/ui"
)

func main() {
	configPath := "config.yaml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	config, err := models.LoadConfig(configPath)
	if err != nil {
		logger.Warn("could not load %s (%v), using defaults", configPath, err)
		config = models.DefaultConfig()
	}
	config.Normalize()
	logger.SetLevel(logger.ParseLevel(config.LogLevel))

	a := app.New()
	w := a.NewWindow("Reading Rabbit")
	w.Resize(fyne.NewSize(900, 650))

	mainUI := ui.NewMainUI(w, config)
	w.SetContent(mainUI.Build())

	w.ShowAndRun()
}
