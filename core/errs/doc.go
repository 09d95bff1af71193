// Package errs defines the coded domain errors shared by every feature.
//
// Services return an *Error built with one of the constructors (NotFound,
// OwnershipViolation, Unauthorized, Validation, Internal). The message is the
// user-facing text written to the "error" key of the JSON response; the code
// decides the HTTP status through Status.
//
// # Usage
//
//	if errors.Is(err, gorm.ErrRecordNotFound) {
//	    return errs.NotFound("Could not find book with ID: %d", id)
//	}
//
//	// In handlers:
//	return c.Status(errs.Status(err)).JSON(fiber.Map{"error": errs.Message(err)})
package errs
