package customers

import (
	"context"
	"errors"
	"fmt"

	"travel-agency/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryInterface defines storage operations for the customer aggregate.
// Create and Update persist the customer row, its two owned address rows and
// the location join rows inside a single transaction; Delete removes the
// customer and cascades to its owned addresses.
type RepositoryInterface interface {
	List(ctx context.Context) ([]models.Customer, error)
	FindByID(ctx context.Context, id int64) (*models.Customer, error)
	Create(ctx context.Context, customer *models.Customer) (*models.Customer, error)
	Update(ctx context.Context, customer *models.Customer, replaceLocations bool) (*models.Customer, error)
	Delete(ctx context.Context, id int64) error
}

// Repository implements RepositoryInterface on a pgx pool.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new customer repository.
func NewRepository(db *pgxpool.Pool) RepositoryInterface {
	return &Repository{db: db}
}

const customerColumns = `id, first_name, last_name, start_location, destination, package_name, cost, phone, notes, permanent_address_id, communication_address_id`

// Create inserts the whole aggregate in one transaction. A uniqueness
// violation (duplicate phone) surfaces as models.ErrConflict with nothing
// committed.
func (r *Repository) Create(ctx context.Context, customer *models.Customer) (*models.Customer, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("repository.CreateCustomer: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	permID, err := insertAddress(ctx, tx, customer.PermanentAddress)
	if err != nil {
		return nil, err
	}
	commID, err := insertAddress(ctx, tx, customer.CommunicationAddress)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO customer (first_name, last_name, start_location, destination, package_name, cost, phone, notes, permanent_address_id, communication_address_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`
	err = tx.QueryRow(ctx, query,
		customer.FirstName, customer.LastName, customer.StartLocation, customer.Destination,
		customer.PackageName, customer.Cost, customer.Phone, customer.Notes, permID, commID,
	).Scan(&customer.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, models.ErrConflict
		}
		return nil, fmt.Errorf("repository.CreateCustomer: %w", err)
	}

	if err := insertLocationLinks(ctx, tx, customer.ID, customer.Locations); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("repository.CreateCustomer: commit: %w", err)
	}
	return customer, nil
}

// Update writes the merged aggregate back. Owned address rows are updated in
// place when they already have an id and inserted when newly attached. When
// replaceLocations is set, the join rows are cleared and rewritten.
func (r *Repository) Update(ctx context.Context, customer *models.Customer, replaceLocations bool) (*models.Customer, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("repository.UpdateCustomer: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	permID, err := upsertAddress(ctx, tx, customer.PermanentAddress)
	if err != nil {
		return nil, err
	}
	commID, err := upsertAddress(ctx, tx, customer.CommunicationAddress)
	if err != nil {
		return nil, err
	}

	query := `
		UPDATE customer
		SET first_name = $1, last_name = $2, start_location = $3, destination = $4,
		    package_name = $5, cost = $6, phone = $7, notes = $8,
		    permanent_address_id = $9, communication_address_id = $10
		WHERE id = $11`
	cmdTag, err := tx.Exec(ctx, query,
		customer.FirstName, customer.LastName, customer.StartLocation, customer.Destination,
		customer.PackageName, customer.Cost, customer.Phone, customer.Notes,
		permID, commID, customer.ID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, models.ErrConflict
		}
		return nil, fmt.Errorf("repository.UpdateCustomer: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return nil, models.ErrNotFound
	}

	if replaceLocations {
		if _, err := tx.Exec(ctx, `DELETE FROM customer_location WHERE customer_id = $1`, customer.ID); err != nil {
			return nil, fmt.Errorf("repository.UpdateCustomer: clear locations: %w", err)
		}
		if err := insertLocationLinks(ctx, tx, customer.ID, customer.Locations); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("repository.UpdateCustomer: commit: %w", err)
	}
	return customer, nil
}

// Delete removes the customer and its two owned address rows in one
// transaction. Join rows go with the customer via FK cascade; location rows
// are never touched.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repository.DeleteCustomer: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	var permID, commID *int64
	err = tx.QueryRow(ctx,
		`SELECT permanent_address_id, communication_address_id FROM customer WHERE id = $1`, id).
		Scan(&permID, &commID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.ErrNotFound
		}
		return fmt.Errorf("repository.DeleteCustomer: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM customer WHERE id = $1`, id); err != nil {
		return fmt.Errorf("repository.DeleteCustomer: %w", err)
	}
	for _, addrID := range []*int64{permID, commID} {
		if addrID == nil {
			continue
		}
		if _, err := tx.Exec(ctx, `DELETE FROM address WHERE id = $1`, *addrID); err != nil {
			return fmt.Errorf("repository.DeleteCustomer: address: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("repository.DeleteCustomer: commit: %w", err)
	}
	return nil
}

func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Customer, error) {
	query := `
		SELECT ` + customerColumns + `
		FROM customer
		WHERE id = $1`
	customer, err := r.scanCustomer(ctx, r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}

	locations, err := r.locationsFor(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	customer.Locations = locations[id]
	if customer.Locations == nil {
		customer.Locations = []models.Location{}
	}
	return customer, nil
}

func (r *Repository) List(ctx context.Context) ([]models.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customer`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("repository.ListCustomers: %w", err)
	}
	defer rows.Close()

	customers := []models.Customer{}
	ids := []int64{}
	for rows.Next() {
		customer, err := r.scanCustomer(ctx, rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, *customer)
		ids = append(ids, customer.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository.ListCustomers: %w", err)
	}

	locations, err := r.locationsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range customers {
		customers[i].Locations = locations[customers[i].ID]
		if customers[i].Locations == nil {
			customers[i].Locations = []models.Location{}
		}
	}
	return customers, nil
}

// scanCustomer reads a customer row and resolves its owned address rows.
func (r *Repository) scanCustomer(ctx context.Context, row pgx.Row) (*models.Customer, error) {
	var customer models.Customer
	var permID, commID *int64
	err := row.Scan(
		&customer.ID, &customer.FirstName, &customer.LastName,
		&customer.StartLocation, &customer.Destination,
		&customer.PackageName, &customer.Cost, &customer.Phone, &customer.Notes,
		&permID, &commID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan customer: %w", err)
	}

	if customer.PermanentAddress, err = r.findAddress(ctx, permID); err != nil {
		return nil, err
	}
	if customer.CommunicationAddress, err = r.findAddress(ctx, commID); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *Repository) findAddress(ctx context.Context, id *int64) (*models.Address, error) {
	if id == nil {
		return nil, nil
	}
	addr := &models.Address{}
	err := r.db.QueryRow(ctx,
		`SELECT id, house_no, street, landmark, city, state, pin_code FROM address WHERE id = $1`, *id).
		Scan(&addr.ID, &addr.HouseNo, &addr.Street, &addr.Landmark, &addr.City, &addr.State, &addr.Pin)
	if err != nil {
		return nil, fmt.Errorf("repository.FindAddress: %w", err)
	}
	return addr, nil
}

// locationsFor loads the location sets for the given customer ids in one
// query, keyed by customer id.
func (r *Repository) locationsFor(ctx context.Context, customerIDs []int64) (map[int64][]models.Location, error) {
	result := make(map[int64][]models.Location, len(customerIDs))
	if len(customerIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT cl.customer_id, l.id, l.name
		FROM customer_location cl
		JOIN location l ON l.id = cl.location_id
		WHERE cl.customer_id = ANY($1)
		ORDER BY cl.position`
	rows, err := r.db.Query(ctx, query, customerIDs)
	if err != nil {
		return nil, fmt.Errorf("repository.LocationsFor: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var customerID int64
		var loc models.Location
		if err := rows.Scan(&customerID, &loc.ID, &loc.Name); err != nil {
			return nil, fmt.Errorf("repository.LocationsFor: %w", err)
		}
		result[customerID] = append(result[customerID], loc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository.LocationsFor: %w", err)
	}
	return result, nil
}

func insertAddress(ctx context.Context, tx pgx.Tx, addr *models.Address) (*int64, error) {
	if addr == nil {
		return nil, nil
	}
	err := tx.QueryRow(ctx,
		`INSERT INTO address (house_no, street, landmark, city, state, pin_code)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		addr.HouseNo, addr.Street, addr.Landmark, addr.City, addr.State, addr.Pin,
	).Scan(&addr.ID)
	if err != nil {
		return nil, fmt.Errorf("repository.InsertAddress: %w", err)
	}
	return &addr.ID, nil
}

func upsertAddress(ctx context.Context, tx pgx.Tx, addr *models.Address) (*int64, error) {
	if addr == nil {
		return nil, nil
	}
	if addr.ID == 0 {
		return insertAddress(ctx, tx, addr)
	}
	_, err := tx.Exec(ctx,
		`UPDATE address SET house_no = $1, street = $2, landmark = $3, city = $4, state = $5, pin_code = $6 WHERE id = $7`,
		addr.HouseNo, addr.Street, addr.Landmark, addr.City, addr.State, addr.Pin, addr.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("repository.UpdateAddress: %w", err)
	}
	return &addr.ID, nil
}

func insertLocationLinks(ctx context.Context, tx pgx.Tx, customerID int64, locations []models.Location) error {
	for i, loc := range locations {
		_, err := tx.Exec(ctx,
			`INSERT INTO customer_location (customer_id, location_id, position) VALUES ($1, $2, $3)`,
			customerID, loc.ID, i,
		)
		if err != nil {
			return fmt.Errorf("repository.InsertLocationLinks: %w", err)
		}
	}
	return nil
}
