package main

import (
	"context"
	"errors"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/campus-connect/adapters/persistence"
	authUC "github.com/khoahotran/campus-connect/internal/application/usecase/auth"
	directoryUC "github.com/khoahotran/campus-connect/internal/application/usecase/directory"
	"github.com/khoahotran/campus-connect/internal/config"
	"github.com/khoahotran/campus-connect/pkg/apperror"
	"github.com/khoahotran/campus-connect/pkg/auth"
	"github.com/khoahotran/campus-connect/pkg/logger"
	"github.com/khoahotran/campus-connect/pkg/validation"
)

var demoStudents = []authUC.SignUpInput{
	{Email: "ana@campus.edu", Name: "Ana Nguyen", Department: "Computer Science"},
	{Email: "bao@campus.edu", Name: "Bao Tran", Department: "Electrical Engineering"},
	{Email: "chi@campus.edu", Name: "Chi Le", Department: "Mathematics"},
}

// Seeds demo students sharing SEED_PASSWORD, with Ana and Bao connected.
func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		panic(err)
	}
	log := logger.NewZapLogger(cfg.App.Env)
	defer log.Sync()

	password := os.Getenv("SEED_PASSWORD")
	if password == "" {
		password = "campus123"
	}

	pool, err := persistence.NewPostgresPool(cfg, log)
	if err != nil {
		log.Fatal("cannot connect DB", err)
	}
	defer pool.Close()

	ctx := context.Background()
	userRepo := persistence.NewPostgresUserRepo(pool, log)
	profileRepo := persistence.NewPostgresProfileRepo(pool, log)
	connRepo := persistence.NewPostgresConnectionRepo(pool, log)
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)
	signUp := authUC.NewSignUpUseCase(userRepo, jwtSvc, validation.New(), log)
	directory := directoryUC.NewDirectoryUseCase(profileRepo, connRepo, log)

	ids := make([]uuid.UUID, 0, len(demoStudents))
	for _, in := range demoStudents {
		in.Password = password
		out, err := signUp.Execute(ctx, in)
		switch {
		case err == nil:
			log.Info("Added student", zap.String("email", in.Email))
			ids = append(ids, out.User.ID)
		case errors.Is(err, apperror.ErrConflict):
			u, findErr := userRepo.FindByEmail(ctx, in.Email)
			if findErr != nil {
				log.Fatal("cannot load existing student", findErr, zap.String("email", in.Email))
			}
			log.Info("Student already exists", zap.String("email", in.Email))
			ids = append(ids, u.ID)
		default:
			log.Fatal("cannot add student", err, zap.String("email", in.Email))
		}
	}

	conn, err := directory.ExecuteSendRequest(ctx, ids[0], ids[1])
	if err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			log.Info("Demo connection already exists")
			return
		}
		log.Fatal("cannot send connection request", err)
	}
	if _, err := directory.ExecuteAccept(ctx, ids[1], conn.ID); err != nil {
		log.Fatal("cannot accept connection request", err)
	}
	log.Info("Connected demo students", zap.String("from", demoStudents[0].Email), zap.String("to", demoStudents[1].Email))
}
