// Command bridgebot подключается к серверу как мост игры и проигрывает
// сценарий нажатий, печатая все, что сервер озвучивает.
package main

import (
	"accessible-tiles/internal/agent"
	"accessible-tiles/pkg/api"
	"accessible-tiles/pkg/logger"
	"context"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
)

func init() {
	logger.Init()
}

func main() {
	var url, scriptPath string
	var linger time.Duration
	flag.StringVar(&url, "url", "ws://localhost:8080/ws?verbose=1", "bridge websocket URL")
	flag.StringVar(&scriptPath, "script", "-", "script file, - for stdin")
	flag.DurationVar(&linger, "linger", time.Second, "how long to keep listening after the script ends")
	flag.Parse()

	var in io.Reader = os.Stdin
	if scriptPath != "-" {
		f, err := os.Open(scriptPath)
		if err != nil {
			logger.Log.WithError(err).Fatal("Failed to open script")
		}
		defer f.Close()
		in = f
	}
	steps, err := agent.ParseScript(in)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to parse script")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bot, err := agent.Dial(ctx, url)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to connect")
	}
	defer bot.Close()

	steps = append(steps, agent.Step{Kind: agent.StepWait, Wait: linger})
	err = bot.Run(ctx, steps, func(msg api.ServerResponse) {
		entry := logger.Log.WithFields(logrus.Fields{"type": msg.Type, "spoken": msg.Spoken})
		if msg.Type == api.MessageSound {
			entry.Info(msg.Cue)
			return
		}
		entry.Info(msg.Text)
	})
	if err != nil && ctx.Err() == nil {
		logger.Log.WithError(err).Error("Script failed")
	}
}
