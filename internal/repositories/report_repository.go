package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"salon_reports_backend/internal/models"

	"github.com/jmoiron/sqlx"
)

// ReportRepository is the read-only document store the report pipeline queries.
// Every finder returns all matching records; there is no paging.
type ReportRepository interface {
	FindAppointments(ctx context.Context, filter models.AppointmentFilter) ([]models.Appointment, error)
	FindCustomers(ctx context.Context, filter models.CustomerFilter) ([]models.Customer, error)
	FindActiveStylists(ctx context.Context) ([]models.Stylist, error)
	FindActiveServices(ctx context.Context) ([]models.Service, error)
	FindInventoryItems(ctx context.Context) ([]models.InventoryItem, error)
	FindCommissions(ctx context.Context, filter models.CommissionFilter) ([]models.Commission, error)
}

type reportRepository struct {
	db Queryer
}

// NewReportRepository creates a Postgres-backed ReportRepository.
func NewReportRepository(db *sqlx.DB) ReportRepository {
	return &reportRepository{db: db}
}

// whereBuilder collects AND-ed conditions with positional Postgres arguments.
// expr must contain exactly one %d verb for the placeholder index.
type whereBuilder struct {
	conditions []string
	args       []interface{}
}

func (w *whereBuilder) add(expr string, arg interface{}) {
	w.args = append(w.args, arg)
	w.conditions = append(w.conditions, fmt.Sprintf(expr, len(w.args)))
}

func (w *whereBuilder) writeTo(b *strings.Builder) {
	if len(w.conditions) > 0 {
		b.WriteString(" WHERE " + strings.Join(w.conditions, " AND "))
	}
}

type appointmentRow struct {
	ID               string         `db:"id"`
	DateTime         time.Time      `db:"date_time"`
	Status           sql.NullString `db:"status"`
	Price            float64        `db:"price"`
	Duration         int            `db:"duration"`
	CustomerID       sql.NullString `db:"customer_id"`
	ServiceID        sql.NullString `db:"service_id"`
	ServiceName      sql.NullString `db:"service_name"`
	ServiceCategory  sql.NullString `db:"service_category"`
	StylistID        sql.NullString `db:"stylist_id"`
	StylistFirstName sql.NullString `db:"stylist_first_name"`
	StylistLastName  sql.NullString `db:"stylist_last_name"`
}

func (row appointmentRow) toModel() models.Appointment {
	apt := models.Appointment{
		ID:       row.ID,
		DateTime: row.DateTime,
		Status:   models.AppointmentStatus(row.Status.String),
		Price:    row.Price,
		Duration: row.Duration,
	}
	if row.CustomerID.Valid {
		id := row.CustomerID.String
		apt.CustomerID = &id
	}
	// LEFT JOIN: the id column is NULL when the referenced row is gone.
	if row.ServiceID.Valid && row.ServiceName.Valid {
		apt.Service = &models.ServiceRef{
			ID:       row.ServiceID.String,
			Name:     row.ServiceName.String,
			Category: row.ServiceCategory.String,
		}
	}
	if row.StylistID.Valid && row.StylistFirstName.Valid {
		apt.Stylist = &models.StylistRef{
			ID:        row.StylistID.String,
			FirstName: row.StylistFirstName.String,
			LastName:  row.StylistLastName.String,
		}
	}
	return apt
}

// FindAppointments returns appointments with their service and stylist populated.
func (r *reportRepository) FindAppointments(ctx context.Context, filter models.AppointmentFilter) ([]models.Appointment, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT
		a.id, a.date_time, a.status, COALESCE(a.price, 0) AS price, COALESCE(a.duration, 0) AS duration,
		a.customer_id,
		s.id AS service_id, s.name AS service_name, s.category AS service_category,
		st.id AS stylist_id, st.first_name AS stylist_first_name, st.last_name AS stylist_last_name
	FROM appointments a
	LEFT JOIN services s ON a.service_id = s.id
	LEFT JOIN stylists st ON a.stylist_id = st.id`)

	var where whereBuilder
	if filter.Status != nil {
		where.add("a.status = $%d", string(*filter.Status))
	}
	if filter.StylistID != nil {
		where.add("a.stylist_id = $%d", *filter.StylistID)
	}
	if filter.ServiceID != nil {
		where.add("a.service_id = $%d", *filter.ServiceID)
	}
	if filter.From != nil {
		where.add("a.date_time >= $%d", *filter.From)
	}
	if filter.To != nil {
		where.add("a.date_time <= $%d", *filter.To)
	}
	where.writeTo(&queryBuilder)
	queryBuilder.WriteString(" ORDER BY a.date_time ASC, a.id ASC")

	var rows []appointmentRow
	if err := sqlx.SelectContext(ctx, r.db, &rows, queryBuilder.String(), where.args...); err != nil {
		return nil, dbError("querying appointments", err)
	}

	appointments := make([]models.Appointment, 0, len(rows))
	for _, row := range rows {
		appointments = append(appointments, row.toModel())
	}
	return appointments, nil
}

// FindCustomers returns customers, optionally bounded by creation time.
func (r *reportRepository) FindCustomers(ctx context.Context, filter models.CustomerFilter) ([]models.Customer, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT id, first_name, last_name, email,
		COALESCE(visit_count, 0) AS visit_count, COALESCE(total_spent, 0) AS total_spent,
		COALESCE(loyalty_points, 0) AS loyalty_points, created_at
	FROM customers`)

	var where whereBuilder
	if filter.CreatedFrom != nil {
		where.add("created_at >= $%d", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		where.add("created_at <= $%d", *filter.CreatedTo)
	}
	where.writeTo(&queryBuilder)
	queryBuilder.WriteString(" ORDER BY created_at ASC, id ASC")

	customers := []models.Customer{}
	if err := sqlx.SelectContext(ctx, r.db, &customers, queryBuilder.String(), where.args...); err != nil {
		return nil, dbError("querying customers", err)
	}
	return customers, nil
}

// FindActiveStylists returns stylists with is_active set, in listing order.
func (r *reportRepository) FindActiveStylists(ctx context.Context) ([]models.Stylist, error) {
	query := `SELECT id, first_name, last_name, is_active
	          FROM stylists
	          WHERE is_active = TRUE
	          ORDER BY last_name ASC, first_name ASC, id ASC`

	stylists := []models.Stylist{}
	if err := sqlx.SelectContext(ctx, r.db, &stylists, query); err != nil {
		return nil, dbError("querying active stylists", err)
	}
	return stylists, nil
}

// FindActiveServices returns the active service menu ordered by name.
func (r *reportRepository) FindActiveServices(ctx context.Context) ([]models.Service, error) {
	query := `SELECT id, name, COALESCE(category, '') AS category, COALESCE(price, 0) AS price,
	                 COALESCE(duration, 0) AS duration, is_active
	          FROM services
	          WHERE is_active = TRUE
	          ORDER BY name ASC, id ASC`

	services := []models.Service{}
	if err := sqlx.SelectContext(ctx, r.db, &services, query); err != nil {
		return nil, dbError("querying active services", err)
	}
	return services, nil
}

// FindInventoryItems returns every tracked inventory item.
func (r *reportRepository) FindInventoryItems(ctx context.Context) ([]models.InventoryItem, error) {
	query := `SELECT id, name, sku,
	                 COALESCE(current_stock, 0) AS current_stock,
	                 COALESCE(min_stock, 0) AS min_stock,
	                 COALESCE(max_stock, 0) AS max_stock,
	                 COALESCE(unit_cost, 0) AS unit_cost
	          FROM inventory_items
	          ORDER BY name ASC, id ASC`

	items := []models.InventoryItem{}
	if err := sqlx.SelectContext(ctx, r.db, &items, query); err != nil {
		return nil, dbError("querying inventory items", err)
	}
	return items, nil
}

// FindCommissions returns commissions whose period lies within the filter window.
func (r *reportRepository) FindCommissions(ctx context.Context, filter models.CommissionFilter) ([]models.Commission, error) {
	query := `SELECT id, stylist_id, period_start, period_end,
	                 COALESCE(final_amount, 0) AS final_amount,
	                 COALESCE(payment_status, '') AS payment_status
	          FROM commissions
	          WHERE period_start >= $1 AND period_end <= $2
	          ORDER BY period_start ASC, id ASC`

	commissions := []models.Commission{}
	if err := sqlx.SelectContext(ctx, r.db, &commissions, query, filter.PeriodFrom, filter.PeriodTo); err != nil {
		return nil, dbError("querying commissions", err)
	}
	return commissions, nil
}
