package env

import (
	"os"

	"github.com/joho/godotenv"
)

// Load reads a .env file when one exists. Missing files are not an
// error so containerized deploys can rely on real environment vars.
func Load(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return err
		}
	}
	return nil
}
