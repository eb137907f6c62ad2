package shared

import (
	"github.com/pkg/errors"

	"github.com/alphadiscovery/alpha/internal/appState"
	"github.com/alphadiscovery/alpha/internal/client"
	sqliteRepo "github.com/alphadiscovery/alpha/internal/repository/sqlite"
	"github.com/alphadiscovery/alpha/internal/service"
)

// InitializeChatService wires the repository and backend client together
// from the already-initialized application state.
func InitializeChatService() (*service.ChatService, error) {
	app := appState.Get()
	cfg := app.Config

	threadRepo, err := sqliteRepo.Initialize(cfg.DBPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize database")
	}

	backend := client.New(cfg.API.BaseURL, cfg.API.Key, cfg.API.UseTools)

	return service.NewChatService(threadRepo, backend), nil
}
