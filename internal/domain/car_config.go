package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CarConfig holds the vehicle and rental contract terms used for cost rollups
type CarConfig struct {
	ID                 int32           `json:"id"`
	WorkspaceID        int32           `json:"workspaceId"`
	Model              string          `json:"modelo"`
	WeeklyRent         decimal.Decimal `json:"aluguelSemanal"`
	WeeklyKmLimit      decimal.Decimal `json:"limiteKmSemanal"`
	ExcessKmFee        decimal.Decimal `json:"valorKmExcedido"`
	KmPerLiter         decimal.Decimal `json:"consumoKmL"`
	FuelPrice          decimal.Decimal `json:"precoCombustivel"`
	ContractStart      *time.Time      `json:"dataInicioContrato,omitempty"`
	ContractDays       int32           `json:"duracaoContratoDias"`
	WeeklyEarningsGoal decimal.Decimal `json:"metaGanhosSemanal"`
	IsActive           bool            `json:"isActive"`
	PhotoPath          *string         `json:"photoPath,omitempty"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`
}

// ContractEnd returns the exclusive end of the contract window, or nil when
// the config has no contract start
func (c *CarConfig) ContractEnd() *time.Time {
	if c.ContractStart == nil {
		return nil
	}
	end := c.ContractStart.AddDate(0, 0, int(c.ContractDays))
	return &end
}

const MaxCarModelLength = 255

// CarConfigRepository defines persistence operations for vehicle configs
type CarConfigRepository interface {
	Create(config *CarConfig) (*CarConfig, error)
	GetByID(workspaceID int32, id int32) (*CarConfig, error)
	GetAll(workspaceID int32) ([]*CarConfig, error)
	GetActive(workspaceID int32) (*CarConfig, error)
	Update(config *CarConfig) (*CarConfig, error)
	// Activate marks the config active and deactivates every other config of the
	// workspace atomically
	Activate(workspaceID int32, id int32) (*CarConfig, error)
	UpdatePhoto(workspaceID int32, id int32, photoPath *string) (*CarConfig, error)
	Delete(workspaceID int32, id int32) error
}
