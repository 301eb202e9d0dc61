package clotureclient

// clientError is a failure detected before any request is sent. Its text is
// shown to the user as is.
type clientError struct {
	msg string
}

func (e *clientError) Error() string { return e.msg }

var (
	// ErrNotAuthenticated is returned when no session is open.
	ErrNotAuthenticated error = &clientError{"Veuillez vous connecter."}

	// ErrForbiddenRole is returned when the session user lacks the required role.
	ErrForbiddenRole error = &clientError{"Accès refusé pour votre rôle."}

	// ErrPeriodExists is returned by Registry.Create when the loaded year already
	// holds a closure for the month. No request is made.
	ErrPeriodExists error = &clientError{"Une clôture existe déjà pour cette période."}

	// ErrInvalidPeriod is returned when the month or year is out of range.
	ErrInvalidPeriod error = &clientError{"Mois ou année invalide."}

	// ErrActionNotAllowed is returned when the closure status does not offer the action.
	ErrActionNotAllowed error = &clientError{"Action non disponible pour ce statut."}

	// ErrNotConfirmed is returned when the user declined a definitive close.
	ErrNotConfirmed error = &clientError{"Clôture annulée."}

	// ErrUnknownPeriod is returned when the id is not in the loaded list.
	ErrUnknownPeriod error = &clientError{"Clôture introuvable. Actualisez la liste."}

	// ErrStaleList is returned with the mutated closure when the operation went
	// through but the list could not be re-fetched afterwards.
	ErrStaleList error = &clientError{"Opération effectuée ; la liste n'a pas pu être actualisée."}
)
