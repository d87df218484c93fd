package cache

import (
	"fmt"

	"github.com/google/uuid"
)

func ScreeningKey(id uuid.UUID) string {
	return fmt.Sprintf("screening:%s", id)
}

func RateLimitKey(keyPrefix string) string {
	return fmt.Sprintf("ratelimit:%s", keyPrefix)
}
