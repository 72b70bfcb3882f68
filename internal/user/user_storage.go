package user

import (
	"github.com/VitaminP8/yatube/models"
)

type UserStorage interface {
	RegisterUser(username, email, password string) (*models.User, error)
	LoginUser(username, password string) (*models.User, string, error) // user + JWT
	GetUserByID(id uint) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
}
