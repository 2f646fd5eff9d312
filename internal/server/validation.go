package server

import "nundu/internal/store"

func validateID(id string) bool {
	return store.ValidID(id)
}
