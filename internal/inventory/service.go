package inventory

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

// ErrorNotFound es un error de dominio (no HTTP); el handler lo traduce a 404.
var ErrorNotFound = errors.New("product not found")

// RepositoryAPI define lo que el service necesita del repositorio.
type RepositoryAPI interface {
	GetByID(ctx context.Context, id int, forUpdate bool) (Prenda, error)
	List(ctx context.Context) ([]Prenda, error)
	SetStock(ctx context.Context, id, stock int) (StockLevel, error)
}

// Service contiene las operaciones de inventario.
// El único que descuenta stock es el motor de pedidos; acá solo se consulta o sobrescribe.
type Service struct {
	repository RepositoryAPI
}

// NewService crea un service de inventario.
func NewService(repository RepositoryAPI) *Service {
	return &Service{repository: repository}
}

// GetProduct devuelve la prenda completa.
func (service *Service) GetProduct(ctx context.Context, productID int) (Prenda, error) {
	prenda, err := service.repository.GetByID(ctx, productID, false)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Prenda{}, ErrorNotFound
		}
		return Prenda{}, err
	}
	return prenda, nil
}

// ListProducts devuelve todas las prendas.
func (service *Service) ListProducts(ctx context.Context) ([]Prenda, error) {
	return service.repository.List(ctx)
}

// GetStock devuelve el stock disponible de una prenda.
func (service *Service) GetStock(ctx context.Context, productID int) (int, error) {
	prenda, err := service.GetProduct(ctx, productID)
	if err != nil {
		return 0, err
	}
	return prenda.CantidadDisponible, nil
}

// ListInventory devuelve {product_id, stock} de todas las prendas.
func (service *Service) ListInventory(ctx context.Context) ([]StockLevel, error) {
	prendas, err := service.repository.List(ctx)
	if err != nil {
		return nil, err
	}

	levels := make([]StockLevel, 0, len(prendas))
	for _, prenda := range prendas {
		levels = append(levels, StockLevel{ProductID: prenda.ID, Stock: prenda.CantidadDisponible})
	}
	return levels, nil
}

// SetStock sobrescribe el stock. No hay piso: un valor negativo se acepta tal cual.
func (service *Service) SetStock(ctx context.Context, productID, stock int) (StockLevel, error) {
	level, err := service.repository.SetStock(ctx, productID, stock)
	if err != nil {
		if errors.Is(err, ErrorNotFound) || errors.Is(err, pgx.ErrNoRows) {
			return StockLevel{}, ErrorNotFound
		}
		return StockLevel{}, err
	}
	return level, nil
}
