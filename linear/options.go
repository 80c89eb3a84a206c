package linear

// Option configures a Regression.
type Option func(*Regression)

// WithFitIntercept sets whether to fit the intercept term. When false the
// model is forced through the origin.
func WithFitIntercept(fit bool) Option {
	return func(lr *Regression) {
		lr.fitIntercept = fit
	}
}

// WithRidge sets the λ added to the diagonal of XᵀX. Zero disables
// regularization entirely.
func WithRidge(lambda float64) Option {
	return func(lr *Regression) {
		lr.regularization = lambda
	}
}
