package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/coralab/coralab-backend/internal/logger"
	"github.com/coralab/coralab-backend/internal/types"
	"github.com/coralab/coralab-backend/internal/utils"
)

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
	postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
	postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
	postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
	postgresName := utils.GetEnv("POSTGRES_NAME", "coralab", log)

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

	log.Info("Connecting to Postgres...")
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		log.Error("Failed to connect to Postgres", "error", err)
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		log.Error("Failed to enable uuid-ossp extension", "error", err)
		return nil, fmt.Errorf("enable uuid-ossp extension: %w", err)
	}

	return &PostgresService{db: db, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	return Migrate(s.db)
}

// Migrate creates the tables and the partial unique indexes. Uniqueness on
// user email and publication research_id only covers live rows; soft-deleted
// rows keep their values without blocking reuse.
func Migrate(conn *gorm.DB) error {
	if err := conn.AutoMigrate(
		&types.User{},
		&types.UserToken{},
		&types.About{},
		&types.Contact{},
		&types.MemberExpertise{},
		&types.Member{},
		&types.MemberEducation{},
		&types.MemberExpertiseLink{},
		&types.Partner{},
		&types.PartnerMember{},
		&types.Documentation{},
		&types.Research{},
		&types.ResearchProgress{},
		&types.ProgressImage{},
		&types.ProgressVideo{},
		&types.ProgressMap{},
		&types.ProgressText{},
		&types.ResearchMember{},
		&types.ResearchPartner{},
		&types.ResearchDocumentation{},
		&types.Publication{},
		&types.Lecturer{},
	); err != nil {
		return err
	}
	for _, stmt := range []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS uniq_user_email_live ON "user" (email) WHERE deleted_at IS NULL`,
		`CREATE UNIQUE INDEX IF NOT EXISTS uniq_publication_research_live ON publication (research_id) WHERE deleted_at IS NULL`,
	} {
		if err := conn.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *PostgresService) DB() *gorm.DB {
	return s.db
}
