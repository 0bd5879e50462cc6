// seed carga usuarios firmantes con su perfil y crea las bodegas principales.
//
// Uso: go run ./cmd/seed [-latin1] usuarios.csv
// Formato CSV (con cabecera): rut,username,nombre,apellido,rol,password[,departamento,registro]
// El rol admite texto libre ("Jefe de Sección"); se guarda normalizado.
// Usa la misma configuración que la API (DATABASE_URL / DB_*).
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/DanySando/Proyecto-GPQ/internal/application/auth"
	"github.com/DanySando/Proyecto-GPQ/internal/domain"
	"github.com/DanySando/Proyecto-GPQ/internal/domain/entity"
	"github.com/DanySando/Proyecto-GPQ/internal/domain/repository"
	"github.com/DanySando/Proyecto-GPQ/internal/domain/role"
	"github.com/DanySando/Proyecto-GPQ/internal/infrastructure/postgres"
	"github.com/DanySando/Proyecto-GPQ/pkg/config"
	"github.com/DanySando/Proyecto-GPQ/pkg/logger"
	rutpkg "github.com/DanySando/Proyecto-GPQ/pkg/rut"
)

type seedUser struct {
	user     entity.User
	password string
}

func main() {
	latin1 := flag.Bool("latin1", false, "el CSV viene en ISO-8859-1 (exportación de Excel)")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "uso: seed [-latin1] usuarios.csv")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		log.Fatal().Err(err).Msg("abrir CSV")
	}
	defer f.Close()

	var r io.Reader = f
	if *latin1 {
		r = transform.NewReader(f, charmap.ISO8859_1.NewDecoder())
	}
	users, err := parseUsers(r)
	if err != nil {
		log.Fatal().Err(err).Msg("leer CSV")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()
	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migración del esquema")
	}

	created, updated := 0, 0
	err = postgres.NewTxRunner(pool).Run(ctx, func(repos repository.Repos) error {
		for kind, name := range entity.PrincipalWarehouseNames {
			if _, err := repos.Warehouses.EnsurePrincipal(ctx, kind, name); err != nil {
				return err
			}
		}
		for _, su := range users {
			isNew, err := upsertUser(ctx, repos, su)
			if err != nil {
				return fmt.Errorf("usuario %s: %w", su.user.RUT, err)
			}
			if isNew {
				created++
			} else {
				updated++
			}
		}
		return nil
	})
	if err != nil {
		log.Fatal().Err(err).Msg("seed")
	}
	log.Info().Int("creados", created).Int("actualizados", updated).Msg("seed completado")
}

// upsertUser crea el usuario o, si el RUT ya existe, solo actualiza su perfil.
func upsertUser(ctx context.Context, repos repository.Repos, su seedUser) (bool, error) {
	existing, err := repos.Users.GetByRUT(ctx, su.user.RUT)
	if err != nil {
		return false, err
	}
	if existing != nil {
		p := *su.user.Profile
		p.UserID = existing.ID
		return false, repos.Users.UpsertProfile(ctx, &p)
	}
	hash, err := auth.HashPassword(su.password)
	if err != nil {
		return false, err
	}
	u := su.user
	u.ID = uuid.New().String()
	u.PasswordHash = hash
	u.CreatedAt = time.Now().UTC()
	return true, repos.Users.Create(ctx, &u)
}

// parseUsers lee el CSV y normaliza RUT y rol. Filas con rol fuera del registro canónico se rechazan.
func parseUsers(r io.Reader) ([]seedUser, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	if _, err := cr.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, domain.Invalid("csv", "archivo vacío")
		}
		return nil, err
	}
	var out []seedUser
	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line++
		if len(rec) < 6 {
			return nil, domain.Invalid("csv", fmt.Sprintf("línea %d: se esperaban al menos 6 columnas", line))
		}
		tag := role.Normalize(rec[4])
		if !role.IsCanonical(tag) {
			return nil, domain.Invalid("rol", fmt.Sprintf("línea %d: rol desconocido %q", line, rec[4]))
		}
		rut := auth.NormalizeRUT(rec[0])
		if rut == "" || strings.TrimSpace(rec[5]) == "" {
			return nil, domain.Invalid("csv", fmt.Sprintf("línea %d: rut y password son obligatorios", line))
		}
		if err := rutpkg.Validate(rut); err != nil {
			return nil, domain.Invalid("rut", fmt.Sprintf("línea %d: %v", line, err))
		}
		su := seedUser{
			user: entity.User{
				RUT:       rut,
				Username:  strings.TrimSpace(rec[1]),
				FirstName: strings.TrimSpace(rec[2]),
				LastName:  strings.TrimSpace(rec[3]),
				Active:    true,
				Profile:   &entity.Profile{Role: tag},
			},
			password: rec[5],
		}
		if len(rec) > 6 {
			su.user.Profile.Department = strings.TrimSpace(rec[6])
		}
		if len(rec) > 7 {
			su.user.Profile.LicenseNumber = strings.TrimSpace(rec[7])
		}
		if su.user.Username == "" {
			su.user.Username = rut
		}
		out = append(out, su)
	}
	return out, nil
}
