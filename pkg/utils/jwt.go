package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
)

var ErrInvalidToken = errors.New("invalid token")

type TokenUser struct {
	UserID string
	Name   string
	Role   string
}

func CreateJWTToken(userID string, userName string, role string, jwtSecretKey string) (string, error) {
	claims := jwt.MapClaims{}
	claims["authorized"] = true
	claims["userID"] = userID
	claims["name"] = userName
	claims["role"] = role
	claims["exp"] = time.Now().Add(time.Hour * 24).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(jwtSecretKey))
}

func ParseJWTToken(tokenString string, jwtSecretKey string) (TokenUser, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(jwtSecretKey), nil
	})
	if err != nil || !token.Valid {
		return TokenUser{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return TokenUser{}, ErrInvalidToken
	}

	userID, _ := claims["userID"].(string)
	if userID == "" {
		return TokenUser{}, ErrInvalidToken
	}

	name, _ := claims["name"].(string)
	role, _ := claims["role"].(string)

	return TokenUser{UserID: userID, Name: name, Role: role}, nil
}
