package models

// TelegramConfig stores the bot credentials and basic settings
type TelegramConfig struct {
	IsEnabled bool   `json:"is_enabled"`
	BotToken  string `json:"bot_token"`
	ChatID    string `json:"chat_id"`

	// APIURL is the Bot API root, https://api.telegram.org in production
	APIURL string `json:"api_url"`
}

// TelegramFilters stores the notification filter settings
type TelegramFilters struct {
	// FormTypes limits notifications to these form types, all when empty
	FormTypes []string `json:"form_types"`

	// DeliveredOnly drops inquiries the relay did not accept
	DeliveredOnly bool `json:"delivered_only"`
}

// IsInquiryAllowed checks if an inquiry matches the filter criteria
func (f *TelegramFilters) IsInquiryAllowed(inquiry *Inquiry) bool {
	if f == nil {
		return true // No filters means allow all
	}

	if f.DeliveredOnly && inquiry.RelayStatus != RelayDelivered {
		return false
	}

	if len(f.FormTypes) == 0 {
		return true
	}
	for _, formType := range f.FormTypes {
		if formType == inquiry.FormType {
			return true
		}
	}
	return false
}
