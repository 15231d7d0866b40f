package config

import (
	"github.com/go-pg/pg/v10"
)

const DefaultPageSize = 10

type Config struct {
	Database pg.Options
	App      struct {
		Host string
		Port int
	}
	Blog struct {
		PageSize int
	}
	Auth struct {
		SigningKey string
		LoginURL   string
	}
}

// PageSize returns the configured feed page size, falling back to the default.
func (c *Config) PageSize() int {
	if c.Blog.PageSize < 1 {
		return DefaultPageSize
	}
	return c.Blog.PageSize
}
