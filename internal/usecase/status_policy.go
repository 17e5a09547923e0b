package usecase

import (
	"fmt"

	"fieldservice_quotes/internal/config"
	"fieldservice_quotes/internal/domain/entities"
)

// StatusPolicy decides which status changes Update accepts.
//
// Whether APPROVED/REJECTED/CANCELED are final is still an open product
// decision, so the permissive policy is the default and the terminal one is
// opt-in (QUOTES_STATUS_POLICY=terminal).
type StatusPolicy interface {
	Name() string
	CanTransition(from, to entities.QuoteStatus) bool
}

type PermissiveStatusPolicy struct{}

func (PermissiveStatusPolicy) Name() string { return config.StatusPolicyPermissive }

func (PermissiveStatusPolicy) CanTransition(_, _ entities.QuoteStatus) bool { return true }

// TerminalStatusPolicy only lets PENDING quotes move; every other status is
// final. Re-applying the current status is always accepted.
type TerminalStatusPolicy struct{}

func (TerminalStatusPolicy) Name() string { return config.StatusPolicyTerminal }

func (TerminalStatusPolicy) CanTransition(from, to entities.QuoteStatus) bool {
	return from == to || from == entities.QuoteStatusPending
}

func StatusPolicyByName(name string) (StatusPolicy, error) {
	switch name {
	case "", config.StatusPolicyPermissive:
		return PermissiveStatusPolicy{}, nil
	case config.StatusPolicyTerminal:
		return TerminalStatusPolicy{}, nil
	}
	return nil, fmt.Errorf("unknown status policy %q", name)
}
