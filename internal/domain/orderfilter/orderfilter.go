// Package orderfilter derives the originating service order choices of a
// quote from its client.
package orderfilter

import "fieldservice_quotes/internal/domain/entities"

// CandidateOrders returns the orders that belong to clientID, in input order.
func CandidateOrders(all []entities.ServiceOrder, clientID string) []entities.ServiceOrder {
	out := make([]entities.ServiceOrder, 0, len(all))
	for _, o := range all {
		if o.ClientID == clientID {
			out = append(out, o)
		}
	}
	return out
}

// Contains reports whether orderID is one of candidates.
func Contains(candidates []entities.ServiceOrder, orderID string) bool {
	for _, o := range candidates {
		if o.ID == orderID {
			return true
		}
	}
	return false
}

// Reconcile applies the cascading reset that follows a client change: the
// current selection survives only if it is still a candidate.
func Reconcile(current *string, candidates []entities.ServiceOrder) *string {
	if current == nil || !Contains(candidates, *current) {
		return nil
	}
	id := *current
	return &id
}
