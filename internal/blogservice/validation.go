package blogservice

import "github.com/gourab8389/blog-author/internal/common"

func validateTitle(v *common.Validator, title string) {
	v.Check(title != "", "title", "must be provided")
	v.Check(v.CheckStringLength(title, 1, 255), "title", "must not be more than 255 characters long")
}

func validateDescription(v *common.Validator, description string) {
	v.Check(description != "", "description", "must be provided")
	v.Check(v.CheckStringLength(description, 1, 255), "description", "must not be more than 255 characters long")
}

func validateContent(v *common.Validator, content string) {
	v.Check(content != "", "content", "must be provided")
}

func validateCategory(v *common.Validator, category string) {
	v.Check(category != "", "category", "must be provided")
	v.Check(v.CheckStringLength(category, 1, 255), "category", "must not be more than 255 characters long")
}

func validateInt(v *common.Validator, num int, name string) {
	v.Check(num > 0, name, "must be greater than zero")
}

func validateUpload(v *common.Validator, file *Upload) {
	v.Check(file != nil, "image", "must be provided")
	if file != nil {
		v.Check(len(file.Data) > 0, "image", "must not be empty")
	}
}
