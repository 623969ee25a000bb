package domain

type SimulationRequest struct {
	ModelID         string   `json:"model_id"`
	StoreID         string   `json:"store_id"`
	CardMachineID   string   `json:"card_machine_id"`
	TradeInDeviceID string   `json:"trade_in_device_id"`
	DamageTypeIDs   []string `json:"damage_type_ids"`
	DownPayment     string   `json:"down_payment"`
}

type InstallmentOption struct {
	Installments       int    `json:"installments"`
	RatePercent        string `json:"rate_percent"`
	TotalCents         Cents  `json:"total_cents"`
	InstallmentCents   Cents  `json:"installment_cents"`
	TotalDisplay       string `json:"total_display"`
	InstallmentDisplay string `json:"installment_display"`
}

type SimulationResult struct {
	ModelID             string              `json:"model_id"`
	StoreID             string              `json:"store_id"`
	PriceCents          Cents               `json:"price_cents"`
	TradeInCreditCents  Cents               `json:"trade_in_credit_cents"`
	DamageDiscountCents Cents               `json:"damage_discount_cents"`
	DownPaymentCents    Cents               `json:"down_payment_cents"`
	NetCents            Cents               `json:"net_cents"`
	PriceDisplay        string              `json:"price_display"`
	NetDisplay          string              `json:"net_display"`
	Options             []InstallmentOption `json:"options"`
}
