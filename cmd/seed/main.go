package main

import (
	"context"
	"log"

	"golang.org/x/crypto/bcrypt"

	"github.com/prism-lt/prism-api/internal/models"
	"github.com/prism-lt/prism-api/internal/repository"
	"github.com/prism-lt/prism-api/pkg/config"
	"github.com/prism-lt/prism-api/pkg/database"
)

type seedTask struct {
	code        string
	name        string
	description string
	taskType    models.TaskType
	duration    float64
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer db.Close()

	ctx := context.Background()

	// Start from a clean slate. Order matters because of foreign keys.
	for _, table := range []string{"evaluation_history", "evaluation_ratings", "evaluations",
		"exercise_participants", "exercises", "attendance", "tasks", "structural_units", "soldiers", "users"} {
		if _, err := db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			log.Fatalf("failed to clear %s: %v", table, err)
		}
	}

	userRepo := repository.NewUserRepository(db)

	admin, err := createUser(ctx, userRepo, "admin", "admin123", models.RoleAdmin)
	if err != nil {
		log.Fatalf("failed to create admin: %v", err)
	}
	if _, err := createUser(ctx, userRepo, "superuser", "super123", models.RoleSuperuser); err != nil {
		log.Fatalf("failed to create superuser: %v", err)
	}
	log.Println("default users created")

	units := models.DefaultStructuralUnits()
	units = append(units,
		models.StructuralUnit{Name: "Paramos burys vienetas 1", ParentUnit: models.UnitParamos, Active: true},
		models.StructuralUnit{Name: "Paramos burys vienetas 2", ParentUnit: models.UnitParamos, Active: true},
		models.StructuralUnit{Name: "Valdymo grupe vienetas 1", ParentUnit: models.UnitValdymo, Active: true},
	)
	if _, err := repository.NewStructuralUnitRepository(db).CreateMany(ctx, units); err != nil {
		log.Fatalf("failed to create structural units: %v", err)
	}
	log.Println("default structural units created")

	taskRepo := repository.NewTaskRepository(db)
	tasks := []seedTask{
		{"FPP-01", "Fizinio pasirengimo patikrinimas", "Metinis fizinio pasirengimo testas", models.TaskIndividual, 2},
		{"SM-01", "Saudymo mokymai", "Ginklu naudojimo ir saudymo mokymai", models.TaskIndividual, 4},
		{"TM-01", "Taktikos mokymai", "Taktiniu veiksmu mokymai", models.TaskCollective, 8},
		{"RSM-01", "Rysiu sistemu mokymai", "Rysiu irenginio naudojimo mokymai", models.TaskCollective, 4},
		{"PPM-01", "Pirmos pagalbos mokymai", "Medicinines pagalbos teikimo mokymai", models.TaskIndividual, 4},
		{"KSM-01", "Kibernetinio saugumo mokymai", "Informaciniu sistemu saugumo mokymai", models.TaskCollective, 2},
	}
	for _, t := range tasks {
		description := t.description
		task := &models.Task{
			Code:        t.code,
			Name:        t.name,
			Description: &description,
			Type:        t.taskType,
			Duration:    t.duration,
			CreatedBy:   admin.ID,
		}
		if err := taskRepo.Create(ctx, task); err != nil {
			log.Fatalf("failed to create task %s: %v", t.name, err)
		}
	}
	log.Println("default tasks created")

	log.Println("seeding completed")
	log.Println("admin - username: admin, password: admin123")
	log.Println("superuser - username: superuser, password: super123")
	log.Println("change these default passwords in production")
}

func createUser(ctx context.Context, repo *repository.UserRepository, username, password string, role models.UserRole) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		Active:       true,
	}
	if err := repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
