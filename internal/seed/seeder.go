package seed

import (
	"context"
	"fmt"

	"dishes-api/internal/repository"

	"github.com/rs/zerolog"
)

// Result summarises what a seeding run wrote.
type Result struct {
	Users  int
	Dishes int
}

// Seeder writes a catalogue into the repositories.
type Seeder struct {
	loader Loader
	dishes repository.DishRepository
	users  repository.UserRepository
	logger zerolog.Logger
}

// NewSeeder creates a seeder reading catalogues through loader.
func NewSeeder(loader Loader, dishes repository.DishRepository, users repository.UserRepository, logger zerolog.Logger) *Seeder {
	return &Seeder{
		loader: loader,
		dishes: dishes,
		users:  users,
		logger: logger.With().Str("component", "seeder").Logger(),
	}
}

// Run loads the catalogue at path. Users are always upserted; dishes are
// only inserted when the dish store is empty, so restarts never duplicate
// or overwrite edited dishes.
func (s *Seeder) Run(ctx context.Context, path string) (Result, error) {
	var res Result

	c, err := s.loader.Load(ctx, path)
	if err != nil {
		return res, fmt.Errorf("failed to load catalogue: %w", err)
	}

	for i := range c.Users {
		if err := s.users.Save(ctx, &c.Users[i]); err != nil {
			return res, fmt.Errorf("failed to seed user %s: %w", c.Users[i].Username, err)
		}
		res.Users++
	}

	n, err := s.dishes.Count(ctx)
	if err != nil {
		return res, fmt.Errorf("failed to count dishes: %w", err)
	}
	if n > 0 {
		s.logger.Info().Int64("existing", n).Msg("dish store not empty, skipping dish seed")
		return res, nil
	}

	for i := range c.Dishes {
		if err := s.dishes.Create(ctx, &c.Dishes[i]); err != nil {
			return res, fmt.Errorf("failed to seed dish %s: %w", c.Dishes[i].Name, err)
		}
		res.Dishes++
	}

	s.logger.Info().
		Int("users", res.Users).
		Int("dishes", res.Dishes).
		Msg("catalogue seeded")

	return res, nil
}
