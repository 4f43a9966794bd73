// Package form holds submission structs and their validation, kept separate
// from persistence: Validate produces a field→message map, the caller decides
// whether and how to save.
package form

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Errors 字段名 → 提示文案；空 map 即校验通过
type Errors map[string]string

func (e Errors) Empty() bool { return len(e) == 0 }

// PostForm 发帖 / 编辑共用
type PostForm struct {
	Text      string `form:"text" validate:"required,min=1"`
	GroupSlug string `form:"group"` // 可选；存在性由上层查库确认
}

func (f *PostForm) Validate() Errors {
	errs := Errors{}
	if err := validate.Struct(f); err != nil {
		for _, fe := range err.(validator.ValidationErrors) {
			if fe.Field() == "Text" {
				errs["text"] = "Post text is required"
			}
		}
	}
	return errs
}

type CommentForm struct {
	Text string `form:"text" validate:"required,min=1"`
}

func (f *CommentForm) Validate() Errors {
	errs := Errors{}
	if err := validate.Struct(f); err != nil {
		errs["text"] = "Comment text is required"
	}
	return errs
}

type SignupForm struct {
	Username string `form:"username" validate:"required,min=3,max=64,alphanum"`
	Email    string `form:"email" validate:"omitempty,email"`
	Password string `form:"password" validate:"required,min=8"`
	FullName string `form:"full_name" validate:"max=128"`
}

func (f *SignupForm) Validate() Errors {
	errs := Errors{}
	if err := validate.Struct(f); err != nil {
		for _, fe := range err.(validator.ValidationErrors) {
			switch fe.Field() {
			case "Username":
				errs["username"] = "Username must be 3-64 alphanumeric characters"
			case "Email":
				errs["email"] = "Invalid e-mail address"
			case "Password":
				errs["password"] = "Password must be at least 8 characters"
			case "FullName":
				errs["full_name"] = "Full name is too long"
			}
		}
	}
	return errs
}

type LoginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

func (f *LoginForm) Validate() Errors {
	errs := Errors{}
	if err := validate.Struct(f); err != nil {
		for _, fe := range err.(validator.ValidationErrors) {
			switch fe.Field() {
			case "Username":
				errs["username"] = "Username is required"
			case "Password":
				errs["password"] = "Password is required"
			}
		}
	}
	return errs
}
