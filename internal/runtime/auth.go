// internal/runtime/auth.go
package runtime

import (
	"context"
	"log/slog"
	"os"

	"github.com/mbrt/gmailctl/cmd/gmailctl/localcred"
	"google.golang.org/api/gmail/v1"

	gc "github.com/joshsymonds/awaybot/internal/gmail"
)

type Scope int

const (
	// ScopeReadonly is enough for dry-run cycles.
	ScopeReadonly Scope = iota
	// ScopeModify covers sending replies and relabeling messages.
	ScopeModify
)

func NewGmailClient(ctx context.Context, cfgDir string, scope Scope) (gc.Client, error) {
	var svc *gmail.Service
	var err error
	// localcred persists the token under cfgDir so interactive consent is
	// only needed on first run.
	switch scope {
	case ScopeReadonly:
		svc, err = (localcred.Provider{}).ServiceWithScopes(ctx, cfgDir, gmail.GmailReadonlyScope)
	case ScopeModify:
		svc, err = (localcred.Provider{}).ServiceWithScopes(
			ctx, cfgDir,
			gmail.GmailModifyScope, gmail.GmailSendScope, gmail.GmailLabelsScope,
		)
	default:
		panic("unknown scope")
	}
	if err != nil {
		return nil, err
	}
	return NewGoogleAPIClient(svc), nil
}

func DefaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
}
