package api

import "context"

// Form submissions from the profile tab: plain POSTs, no response payload
// the app cares about beyond success.

type ContactForm struct {
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone"`
	Subject string `json:"subject,omitempty"`
	Message string `json:"message"`
}

// QuoteForm requests a "devis" (price quote) for a solar installation.
type QuoteForm struct {
	Name            string `json:"name"`
	Email           string `json:"email,omitempty"`
	Phone           string `json:"phone"`
	Address         string `json:"address"`
	SystemType      string `json:"systemType"`
	EstimatedBudget string `json:"estimatedBudget,omitempty"`
	Message         string `json:"message,omitempty"`
}

type InstallationForm struct {
	Name               string `json:"name"`
	Email              string `json:"email,omitempty"`
	Phone              string `json:"phone"`
	Address            string `json:"address"`
	PropertyType       string `json:"propertyType"`
	RoofType           string `json:"roofType,omitempty"`
	AverageMonthlyBill string `json:"averageMonthlyBill,omitempty"`
	Notes              string `json:"notes,omitempty"`
}

type RepairForm struct {
	Name          string `json:"name"`
	Email         string `json:"email,omitempty"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	EquipmentType string `json:"equipmentType"`
	Issue         string `json:"issue"`
}

func (c *Client) SubmitContact(ctx context.Context, form ContactForm) error {
	return c.post(ctx, "/contact", form, nil)
}

func (c *Client) SubmitQuote(ctx context.Context, form QuoteForm) error {
	return c.post(ctx, "/devis", form, nil)
}

func (c *Client) SubmitInstallation(ctx context.Context, form InstallationForm) error {
	return c.post(ctx, "/installation-requests", form, nil)
}

func (c *Client) SubmitRepair(ctx context.Context, form RepairForm) error {
	return c.post(ctx, "/repair-requests", form, nil)
}
