package services

import (
	"context"
	"fmt"
	"time"

	"github.com/danehillard/dhp/pkg/models"
	"github.com/rfberaldo/sqlz"
	"github.com/shopspring/decimal"
)

type OfferingServicer interface {
	Create(service *models.Service) error
	GetAll() ([]models.Service, error)
}

type OfferingServiceConfig struct {
	DB *sqlz.DB
}

/*
OfferingService stores the photography services (sessions, prints and so
on) listed on the services page.
*/
type OfferingService struct {
	db *sqlz.DB
}

func NewOfferingService(config OfferingServiceConfig) OfferingService {
	return OfferingService{
		db: config.DB,
	}
}

func (s OfferingService) Create(service *models.Service) error {
	var (
		err error
		id  int64
	)

	sql := `
INSERT INTO services (
   title
   , description
   , price
) VALUES (?, ?, ?)
`

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	var price any

	if service.Price.Valid {
		price = service.Price.Decimal.StringFixed(2)
	}

	result, err := s.db.Exec(ctx, sql, service.Title, service.Description, price)

	if err != nil {
		return fmt.Errorf("error inserting service '%s': %w", service.Title, err)
	}

	if id, err = result.LastInsertId(); err != nil {
		return fmt.Errorf("error reading id of service '%s': %w", service.Title, err)
	}

	service.ID = uint(id)
	return nil
}

type serviceRow struct {
	ID          uint
	Title       string
	Description string
	Price       *string
}

func (s OfferingService) GetAll() ([]models.Service, error) {
	var (
		err  error
		rows []serviceRow
	)

	sql := `
SELECT
   s.id
   , s.title
   , s.description
   , s.price
FROM services AS s
ORDER BY s.id
`

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err = s.db.Query(ctx, &rows, sql); err != nil && !sqlz.IsNotFound(err) {
		return nil, fmt.Errorf("error querying for all services: %w", err)
	}

	result := make([]models.Service, 0, len(rows))

	for _, row := range rows {
		service := models.Service{
			ID:          row.ID,
			Title:       row.Title,
			Description: row.Description,
		}

		if row.Price != nil {
			price, err := decimal.NewFromString(*row.Price)

			if err != nil {
				return nil, fmt.Errorf("error parsing price of service %d: %w", row.ID, err)
			}

			service.Price = decimal.NewNullDecimal(price)
		}

		result = append(result, service)
	}

	return result, nil
}
