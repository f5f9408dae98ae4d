package git

import "time"

type AuthorConfig struct {
	Name  string
	Email string
}

type Config struct {
	Timeout time.Duration
	Author  AuthorConfig
}
