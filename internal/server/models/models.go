package models

import sm "github.com/Kirill555dg/NotesApp/internal/shared/models"

type (
	User          = sm.User
	TokenResponse = sm.TokenResponse
	Note          = sm.Note
)
