// seed crea usuarios, tiendas y productos de demostración usando los mismos casos de uso de la API.
// No hace nada si el primer usuario de demo ya existe.
//
// Uso: go run ./cmd/seed
package main

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/storekeeper-api/internal/application/auth"
	"github.com/jhoicas/storekeeper-api/internal/application/dto"
	"github.com/jhoicas/storekeeper-api/internal/application/usecase"
	"github.com/jhoicas/storekeeper-api/internal/infrastructure/postgres"
	"github.com/jhoicas/storekeeper-api/pkg/config"
	"github.com/jhoicas/storekeeper-api/pkg/logger"
)

const seedPassword = "password123"

type seedProduct struct {
	name, category, price, description string
	quantity                           int
}

type seedStore struct {
	email, name, description, address string
	products                          []seedProduct
}

var seedData = []seedStore{
	{
		email: "store1@example.com", name: "TechMart Electronics",
		description: "Your one-stop shop for all electronics and gadgets",
		address:     "123 Tech Street, Silicon Valley, CA",
		products: []seedProduct{
			{"iPhone 15 Pro", "Electronics", "999.99", "Latest iPhone with advanced camera system", 25},
			{"MacBook Pro 14-inch", "Electronics", "1999.99", "Laptop with M3 chip", 15},
			{"AirPods Pro", "Electronics", "249.99", "Wireless earbuds with noise cancellation", 50},
			{"USB-C Cable", "Accessories", "19.99", "", 8},
		},
	},
	{
		email: "store2@example.com", name: "Fashion Forward",
		description: "Trendy clothing and accessories",
		address:     "456 Fashion Ave, New York, NY",
		products: []seedProduct{
			{"Denim Jacket", "Clothing", "89.99", "Classic blue denim jacket", 40},
			{"Leather Belt", "Accessories", "34.50", "", 5},
			{"Running Shoes", "Footwear", "129.00", "Lightweight running shoes", 22},
		},
	},
	{
		email: "store3@example.com", name: "BookWorm Paradise",
		description: "Books for every reader",
		address:     "789 Literature Lane, Boston, MA",
		products: []seedProduct{
			{"The Go Programming Language", "Books", "39.99", "Donovan & Kernighan", 12},
			{"Bookmark Set", "Stationery", "4.99", "", 0},
		},
	},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "seed"})
	ctx := context.Background()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()
	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("aplicar esquema")
	}

	userRepo := postgres.NewUserRepository(pool)
	storeRepo := postgres.NewStoreRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	txnRepo := postgres.NewTransactionRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	existing, err := userRepo.GetByEmail(ctx, seedData[0].email)
	if err != nil {
		log.Fatal().Err(err).Msg("consultar usuarios")
	}
	if existing != nil {
		log.Info().Msg("datos de demo ya existen; nada que hacer")
		return
	}

	// Sin publicador: el seed no envía correos de bienvenida
	authUC := auth.NewAuthUseCase(userRepo, storeRepo, nil, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log)
	storeUC := usecase.NewStoreUseCase(storeRepo, productRepo)
	productUC := usecase.NewProductUseCase(txRunner, productRepo, storeRepo, txnRepo)

	for _, s := range seedData {
		reg, err := authUC.Register(ctx, dto.RegisterRequest{Email: s.email, Password: seedPassword})
		if err != nil {
			log.Fatal().Err(err).Str("email", s.email).Msg("registrar usuario")
		}
		name, desc, addr := s.name, s.description, s.address
		if _, err := storeUC.Update(ctx, reg.User.ID, reg.StoreID, dto.UpdateStoreRequest{
			Name: &name, Description: &desc, Address: &addr,
		}); err != nil {
			log.Fatal().Err(err).Str("store", s.name).Msg("actualizar tienda")
		}
		for _, p := range s.products {
			price := decimal.RequireFromString(p.price)
			if _, err := productUC.Create(ctx, reg.User.ID, dto.CreateProductRequest{
				Name:        p.name,
				Category:    p.category,
				Price:       &price,
				Quantity:    p.quantity,
				Description: p.description,
				StoreID:     reg.StoreID,
			}); err != nil {
				log.Fatal().Err(err).Str("product", p.name).Msg("crear producto")
			}
		}
		log.Info().Str("email", s.email).Str("store", s.name).Int("products", len(s.products)).Msg("tienda de demo creada")
	}
	log.Info().Msg("seed completado")
}
