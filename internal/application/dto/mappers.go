package dto

import "github.com/jhoicas/storekeeper-api/internal/domain/entity"

// FromProduct convierte la entidad en su representación HTTP.
func FromProduct(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		StoreID:     p.StoreID,
		SKU:         p.SKU,
		Name:        p.Name,
		Category:    p.Category,
		Price:       p.Price,
		Quantity:    p.Quantity,
		LowStock:    p.IsLowStock(),
		Description: p.Description,
		ImageURL:    p.ImageURL,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// FromProducts convierte una lista; nunca devuelve nil para serializar [] en vez de null.
func FromProducts(list []*entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, FromProduct(p))
	}
	return out
}

// FromStore convierte la entidad tienda.
func FromStore(s *entity.Store) StoreResponse {
	return StoreResponse{
		ID:          s.ID,
		UserID:      s.UserID,
		Name:        s.Name,
		Description: s.Description,
		Address:     s.Address,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// RefOf referencia corta de la tienda.
func RefOf(s *entity.Store) StoreRef {
	return StoreRef{ID: s.ID, Name: s.Name}
}

// FromTransaction convierte una entrada del ledger.
func FromTransaction(t *entity.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:              t.ID,
		ProductID:       t.ProductID,
		ReferenceNumber: t.ReferenceNumber,
		Type:            t.Type,
		Quantity:        t.Quantity,
		Status:          t.Status,
		Description:     t.Description,
		CreatedAt:       t.CreatedAt,
	}
}
