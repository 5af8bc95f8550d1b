// Package speech - приемники пользовательских сообщений: лог и рассылка
// подключенным клиентам (экранный диктор на стороне игры).
package speech

import (
	"accessible-tiles/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Log пишет сообщения только в лог. Озвучиваемые - на уровне Info,
// остальные - Debug с пометкой "(not read)".
type Log struct{}

func (Log) Report(text string, spoken bool) {
	entry := logger.Log.WithFields(logrus.Fields{
		"component": "speech",
		"spoken":    spoken,
	})
	if spoken {
		entry.Info(text)
		return
	}
	entry.Debug(text + " (not read)")
}

func (Log) PlaySound(cue string) {
	logger.Log.WithFields(logrus.Fields{
		"component": "speech",
		"cue":       cue,
	}).Debug("sound")
}
