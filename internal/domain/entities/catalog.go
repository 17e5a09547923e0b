package entities

// Reference catalog records. They are owned by the management console and
// only read here; an empty ID means "not found".

type Client struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Part struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// Label is the display text used when a part is rendered on a quote.
func (p Part) Label() string {
	if p.Code == "" {
		return p.Name
	}
	if p.Name == "" {
		return p.Code
	}
	return p.Code + " - " + p.Name
}

type ServiceType struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

// ServiceOrder is a prior work record a quote may originate from.
type ServiceOrder struct {
	ID         string `json:"id"`
	ClientID   string `json:"client_id"`
	Identifier string `json:"identifier"`
}
