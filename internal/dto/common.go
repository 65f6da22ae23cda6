package dto

// ListParams defines offset pagination query parameters shared by simple
// list endpoints.
type ListParams struct {
	Limit  int `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	Offset int `form:"offset,default=0" binding:"omitempty,min=0"`
}

// TokenListParams defines cursor pagination query parameters for the
// document listings (sales, purchases, journal entries).
type TokenListParams struct {
	Limit     int    `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	NextToken string `form:"nextToken"`
}
