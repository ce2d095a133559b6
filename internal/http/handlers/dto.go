package handlers

import "github.com/castello-soft/stock-ledger/internal/models"

type ItemRequest struct {
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Unit      string  `json:"unit"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

type ItemResponse struct {
	Id         int     `json:"id"`
	Name       string  `json:"name"`
	Category   string  `json:"category"`
	Unit       string  `json:"unit"`
	Quantity   float64 `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	TotalValue float64 `json:"total_value"`
	LowStock   bool    `json:"low_stock"`
}

func itemResponse(item models.Item) ItemResponse {
	return ItemResponse{
		Id:         item.ID,
		Name:       item.Name,
		Category:   item.Category,
		Unit:       item.Unit,
		Quantity:   item.Quantity,
		UnitPrice:  item.UnitPrice,
		TotalValue: item.TotalValue(),
		LowStock:   item.LowStock(),
	}
}

type MovementRequest struct {
	ItemID       int      `json:"item_id"`
	MovementType string   `json:"movement_type"`
	Quantity     float64  `json:"quantity"`
	UnitPrice    *float64 `json:"unit_price,omitempty"`
}

type MovementResponse struct {
	ID              int     `json:"id"`
	ItemID          int     `json:"item_id"`
	MovementType    string  `json:"movement_type"`
	Quantity        float64 `json:"quantity"`
	UnitPrice       float64 `json:"unit_price"`
	Timestamp       string  `json:"timestamp"`
	QuantityAfter   float64 `json:"quantity_after"`
	TotalValueAfter float64 `json:"total_value_after"`
}

func movementResponse(m models.Movement) MovementResponse {
	return MovementResponse{
		ID:              m.ID,
		ItemID:          m.ItemID,
		MovementType:    string(m.Kind),
		Quantity:        m.Quantity,
		UnitPrice:       m.UnitPrice,
		Timestamp:       m.Timestamp,
		QuantityAfter:   m.QuantityAfter,
		TotalValueAfter: m.TotalValueAfter,
	}
}

type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResult struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

type RegisterResult struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}
