package dto

// ReportRangeParams defines the date window query parameters shared by the
// reporting endpoints. Both bounds are inclusive.
type ReportRangeParams struct {
	From string `form:"from" binding:"required,datetime=2006-01-02"`
	To   string `form:"to" binding:"required,datetime=2006-01-02"`
}

// TopProductsParams adds a result cap to the range parameters.
type TopProductsParams struct {
	ReportRangeParams
	Limit int `form:"limit,default=10" binding:"omitempty,min=1,max=100"`
}
