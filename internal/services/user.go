package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/coralab/coralab-backend/internal/apierr"
	"github.com/coralab/coralab-backend/internal/logger"
	"github.com/coralab/coralab-backend/internal/repos"
	"github.com/coralab/coralab-backend/internal/requestdata"
	"github.com/coralab/coralab-backend/internal/types"
)

type UserService interface {
	Register(ctx context.Context, name, email, password, role string) (*types.User, error)
	List(ctx context.Context) ([]*types.User, error)
	Get(ctx context.Context, id uuid.UUID) (*types.User, error)
	Update(ctx context.Context, id uuid.UUID, name, email, password *string) (*types.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type userService struct {
	db           *gorm.DB
	log          *logger.Logger
	userRepo     repos.UserRepo
	tokenRepo    repos.UserTokenRepo
	memberRepo   repos.MemberRepo
	researchRepo repos.ResearchRepo
	progressRepo repos.ResearchProgressRepo
	pubRepo      repos.PublicationRepo
	lecturerRepo repos.LecturerRepo
	storage      StorageService
}

func NewUserService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	tokenRepo repos.UserTokenRepo,
	memberRepo repos.MemberRepo,
	researchRepo repos.ResearchRepo,
	progressRepo repos.ResearchProgressRepo,
	pubRepo repos.PublicationRepo,
	lecturerRepo repos.LecturerRepo,
	storage StorageService,
) UserService {
	return &userService{
		db:           db,
		log:          log.With("service", "UserService"),
		userRepo:     userRepo,
		tokenRepo:    tokenRepo,
		memberRepo:   memberRepo,
		researchRepo: researchRepo,
		progressRepo: progressRepo,
		pubRepo:      pubRepo,
		lecturerRepo: lecturerRepo,
		storage:      storage,
	}
}

func (us *userService) Register(ctx context.Context, name, email, password, role string) (*types.User, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || !rd.IsSuperadmin() {
		return nil, apierr.Forbidden("only superadmin can register accounts")
	}
	if role == "" {
		role = types.RoleAdmin
	}
	if role != types.RoleAdmin && role != types.RoleSuperadmin {
		return nil, apierr.Validation(map[string]string{"role": "role must be admin or superadmin"})
	}

	exists, err := us.userRepo.EmailExists(ctx, nil, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apierr.Conflict("email already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &types.User{
		ID:       uuid.New(),
		Name:     name,
		Email:    email,
		Password: string(hashed),
		Role:     role,
	}
	created, err := us.userRepo.Create(ctx, nil, []*types.User{user})
	if err != nil {
		return nil, err
	}
	return created[0], nil
}

func (us *userService) List(ctx context.Context) ([]*types.User, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || !rd.IsSuperadmin() {
		return nil, apierr.Forbidden("only superadmin can list accounts")
	}
	return us.userRepo.List(ctx, nil)
}

func (us *userService) Get(ctx context.Context, id uuid.UUID) (*types.User, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || (!rd.IsSuperadmin() && rd.UserID != id) {
		return nil, apierr.Forbidden("cannot view another account")
	}
	users, err := us.userRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, apierr.NotFound("user")
	}
	return users[0], nil
}

func (us *userService) Update(ctx context.Context, id uuid.UUID, name, email, password *string) (*types.User, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || (!rd.IsSuperadmin() && rd.UserID != id) {
		return nil, apierr.Forbidden("cannot update another account")
	}

	users, err := us.userRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, apierr.NotFound("user")
	}
	user := users[0]

	user.Password = ""
	if name != nil {
		user.Name = *name
	}
	if email != nil && *email != user.Email {
		exists, err := us.userRepo.EmailExists(ctx, nil, *email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, apierr.Conflict("email already registered")
		}
		user.Email = *email
	}
	if password != nil {
		hashed, hErr := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
		if hErr != nil {
			return nil, fmt.Errorf("hash password: %w", hErr)
		}
		user.Password = string(hashed)
	}
	if err := us.userRepo.Update(ctx, nil, user); err != nil {
		return nil, err
	}
	users, err = us.userRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
	if err != nil || len(users) == 0 {
		return nil, apierr.NotFound("user")
	}
	return users[0], nil
}

// Delete removes the account and everything it owns: research projects
// (with their progress timelines, pivots and publication), lecturer
// materials, member profiles, and any outstanding sessions.
func (us *userService) Delete(ctx context.Context, id uuid.UUID) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || !rd.IsSuperadmin() {
		return apierr.Forbidden("only superadmin can delete accounts")
	}

	users, err := us.userRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
	if err != nil {
		return err
	}
	if len(users) == 0 {
		return apierr.NotFound("user")
	}

	var orphanedFiles []string
	err = us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		researches, err := us.researchRepo.ListByUserID(ctx, tx, id)
		if err != nil {
			return err
		}
		researchIDs := make([]uuid.UUID, 0, len(researches))
		for _, r := range researches {
			researchIDs = append(researchIDs, r.ID)
			if err := us.progressRepo.DeleteByResearchID(ctx, tx, r.ID); err != nil {
				return err
			}
			if err := us.researchRepo.DeletePivotsByResearchID(ctx, tx, r.ID); err != nil {
				return err
			}
		}
		if len(researchIDs) > 0 {
			if err := us.pubRepo.DeleteByResearchIDs(ctx, tx, researchIDs); err != nil {
				return err
			}
		}
		for _, r := range researches {
			if err := us.researchRepo.Delete(ctx, tx, r.ID); err != nil {
				return err
			}
		}

		lecturers, err := us.lecturerRepo.ListByUserID(ctx, tx, id)
		if err != nil {
			return err
		}
		for _, l := range lecturers {
			if l.StoragePath != "" {
				orphanedFiles = append(orphanedFiles, l.StoragePath)
			}
		}
		if err := us.lecturerRepo.DeleteByUserID(ctx, tx, id); err != nil {
			return err
		}

		members, err := us.memberRepo.ListByUserID(ctx, tx, id)
		if err != nil {
			return err
		}
		for _, m := range members {
			if err := us.memberRepo.DetachExpertiseByMemberID(ctx, tx, m.ID); err != nil {
				return err
			}
			if err := us.memberRepo.DeleteEducationsByMemberID(ctx, tx, m.ID); err != nil {
				return err
			}
			if err := us.memberRepo.Delete(ctx, tx, m.ID); err != nil {
				return err
			}
		}

		if err := us.tokenRepo.DeleteByUserID(ctx, tx, id); err != nil {
			return err
		}
		return us.userRepo.Delete(ctx, tx, id)
	})
	if err != nil {
		return err
	}

	// Disk cleanup happens after commit; a stale file is preferable to a
	// dangling row pointing at a deleted one.
	for _, path := range orphanedFiles {
		if dErr := us.storage.Delete(ctx, path); dErr != nil {
			us.log.Warn("failed to remove stored file", "path", path, "error", dErr)
		}
	}
	return nil
}
