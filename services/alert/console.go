package alertsvc

import (
	"log"
	"sync"

	"github.com/Narendra3579/ssvteachersapp/core"
)

type consoleService struct {
	prefix        string
	disableOutput bool

	mu    sync.Mutex
	shown []string
}

var _ core.Alerter = (*consoleService)(nil)

// NewConsoleService writes transient user-facing messages to the process
// log, the closest a headless instance gets to the app's toast banner.
func NewConsoleService(conf *core.Config) core.Alerter {
	return &consoleService{prefix: "[" + conf.AppName + "] "}
}

func (svc *consoleService) Alert(message string) {
	svc.mu.Lock()
	svc.shown = append(svc.shown, message)
	svc.mu.Unlock()
	if !svc.disableOutput {
		log.Println(svc.prefix + message)
	}
}

type consoleServiceMock struct {
	consoleService
}

// NewConsoleServiceMock records messages without printing them, for tests.
func NewConsoleServiceMock() *consoleServiceMock {
	return &consoleServiceMock{consoleService{disableOutput: true}}
}

// Shown returns the messages alerted so far, oldest first.
func (svc *consoleServiceMock) Shown() []string {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	res := make([]string, len(svc.shown))
	copy(res, svc.shown)
	return res
}
