package domain

import (
	"errors"
)

var (
	MessageSuccessGetTags   = "tags retrieved successfully"
	MessageSuccessGetTag    = "tag retrieved successfully"
	MessageSuccessCreateTag = "tag created successfully"

	MessageFailedGetTags   = "failed to retrieve tags"
	MessageFailedGetTag    = "failed to retrieve tag"
	MessageFailedCreateTag = "failed to create tag"

	ErrTagNotFound  = errors.New("tag not found")
	ErrTagSlugTaken = errors.New("tag slug already exists")
)

type (
	TagRequest struct {
		Name  string `json:"name" validate:"required,max=200"`
		Color string `json:"color" validate:"omitempty,hexcolor,len=7"`
		Slug  string `json:"slug" validate:"required,max=200,slug"`
	}

	TagResponse struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Color string `json:"color"`
		Slug  string `json:"slug"`
	}
)
