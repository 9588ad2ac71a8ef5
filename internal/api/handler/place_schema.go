package handler

// placeForm is the multipart text portion of a place submission.
// Capacity and isActive arrive as strings and are parsed after the
// presence checks pass.
type placeForm struct {
	Name           string `form:"name"           validate:"required"`
	Description    string `form:"description"    validate:"required"`
	Capacity       string `form:"capacity"       validate:"required"`
	IsActive       string `form:"isActive"       validate:"required"`
	PosterFileName string `form:"posterFileName" validate:"required"`
	VideoFileName  string `form:"videoFileName"  validate:"required"`
}
