package repository

import (
	"context"

	"pasteleria/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClienteRepository reads clients referenced by quotes. Client CRUD belongs
// to the customer-facing system; only lookups are needed here.
type ClienteRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Cliente, error)
}

type clienteRepo struct{ db *gorm.DB }

func NewClienteRepository(db *gorm.DB) ClienteRepository { return &clienteRepo{db: db} }

func (r *clienteRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Cliente, error) {
	var c model.Cliente
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}
