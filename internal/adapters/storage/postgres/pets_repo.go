package postgres

import (
	"context"
	"database/sql"
	"strings"

	"pets-app/internal/domain/pets"
)

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pets (
			id, name, species, breed,
			birth_date, weight, color,
			microchip_number, photo_url, image_data,
			owner_name, owner_phone, owner_email,
			created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
	`,
		p.ID,
		p.Name,
		string(p.Species),
		p.Breed,
		p.BirthDate,
		p.Weight,
		p.Color,
		toNullString(p.MicrochipNumber),
		toNullString(p.PhotoURL),
		p.ImageData,
		p.OwnerName,
		p.OwnerPhone,
		p.OwnerEmail,
		p.CreatedAt,
	)
	return err
}

func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE pets
		SET
			name = $2,
			species = $3,
			breed = $4,
			birth_date = $5,
			weight = $6,
			color = $7,
			microchip_number = $8,
			photo_url = $9,
			image_data = $10,
			owner_name = $11,
			owner_phone = $12,
			owner_email = $13
		WHERE id = $1
	`,
		p.ID,
		p.Name,
		string(p.Species),
		p.Breed,
		p.BirthDate,
		p.Weight,
		p.Color,
		toNullString(p.MicrochipNumber),
		toNullString(p.PhotoURL),
		p.ImageData,
		p.OwnerName,
		p.OwnerPhone,
		p.OwnerEmail,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

const petColumns = `
	id, name, species, breed,
	birth_date, weight, color,
	microchip_number, photo_url, image_data,
	owner_name, owner_phone, owner_email,
	created_at
`

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+petColumns+`
		FROM pets
		WHERE id = $1
	`, id)

	p, err := scanPet(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return pets.Pet{}, ErrNotFound
		}
		return pets.Pet{}, err
	}
	return p, nil
}

func (r *PetsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PetsRepo) List(ctx context.Context) ([]pets.Pet, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+petColumns+`
		FROM pets
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectPets(rows)
}

func (r *PetsRepo) ListByOwner(ctx context.Context, ownerEmail string) ([]pets.Pet, error) {
	ownerEmail = strings.TrimSpace(ownerEmail)
	if ownerEmail == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+petColumns+`
		FROM pets
		WHERE lower(owner_email) = lower($1)
		ORDER BY created_at ASC
	`, ownerEmail)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectPets(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPet(row rowScanner) (pets.Pet, error) {
	var p pets.Pet
	var species string
	var microchip, photoURL sql.NullString
	if err := row.Scan(
		&p.ID,
		&p.Name,
		&species,
		&p.Breed,
		&p.BirthDate,
		&p.Weight,
		&p.Color,
		&microchip,
		&photoURL,
		&p.ImageData,
		&p.OwnerName,
		&p.OwnerPhone,
		&p.OwnerEmail,
		&p.CreatedAt,
	); err != nil {
		return pets.Pet{}, err
	}

	p.Species = pets.ParseSpecies(species)
	p.MicrochipNumber = microchip.String
	p.PhotoURL = photoURL.String
	return p, nil
}

func collectPets(rows *sql.Rows) ([]pets.Pet, error) {
	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// microchip_number y photo_url son columnas nullable; el dominio usa
// string vacío para ausente.
func toNullString(s string) sql.NullString {
	if strings.TrimSpace(s) == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}
