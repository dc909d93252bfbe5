package socks5

import (
	"context"

	"github.com/things-go/socks5-handshake/statute"
)

// RuleSet is used to provide custom rules to allow or prohibit actions
type RuleSet interface {
	Allow(ctx context.Context, req *EarlyClient) (context.Context, bool)
}

// NewPermitAll returns a RuleSet which allows all types of connections
func NewPermitAll() *PermitCommand {
	return &PermitCommand{true, true, true}
}

// NewPermitNone returns a RuleSet which disallows all types of connections
func NewPermitNone() *PermitCommand {
	return &PermitCommand{false, false, false}
}

// NewPermitConnOnly returns a RuleSet which only allows connect
func NewPermitConnOnly() *PermitCommand {
	return &PermitCommand{true, false, false}
}

// PermitCommand is an implementation of the RuleSet which
// enables filtering supported commands
type PermitCommand struct {
	EnableConnect   bool
	EnableBind      bool
	EnableAssociate bool
}

// Allow implement interface RuleSet
func (p *PermitCommand) Allow(ctx context.Context, req *EarlyClient) (context.Context, bool) {
	switch req.Command() {
	case statute.CommandConnect:
		return ctx, p.EnableConnect
	case statute.CommandBind:
		return ctx, p.EnableBind
	case statute.CommandAssociate:
		return ctx, p.EnableAssociate
	}
	return ctx, false
}
