// Package errors provides the coded error type used across verb-battle.
//
// Every error that leaves a package is an *Error carrying a Code, a
// player-facing message, an optional cause and optional metadata.
//
// # Basic Usage
//
// Creating errors:
//
//	err := errors.NotFound("enemy not found")
//	err := errors.DataNotFoundf("no conjugation for %s/%s", verb, pronoun)
//
// Adding metadata:
//
//	err := errors.DataNotFound("tense missing from verb table").
//	    WithMeta("tense", tense).
//	    WithMeta("enemy_id", enemyID)
//
// Wrapping keeps the code of a coded cause; plain causes become Internal:
//
//	if err := repo.Save(ctx, input); err != nil {
//	    return errors.Wrap(err, "failed to save game")
//	}
//
// # Error Checking
//
//	if errors.IsDataNotFound(err) {
//	    // content hole, abort the battle
//	}
//
//	code := errors.GetCode(err)
//	if code.Fatal() {
//	    // return to idle
//	}
//
// # Validation Errors
//
// Content and configuration are checked once at load time:
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRequired("regions[0].id", region.ID, vb)
//	errors.ValidatePositive("regions[0].required_level", region.RequiredLevel, vb)
//	if err := vb.Build(); err != nil {
//	    return err
//	}
//
// # Layer Guidelines
//
// Repository layer:
//   - Return NotFound for missing saves, DataLoss for undecodable saves
//   - Wrap driver errors with context; they surface as Internal
//
// Engine and orchestrator layer:
//   - Return InvalidArgument for bad input and FailedPrecondition for
//     operations that do not fit the current battle state
//   - Return DataNotFound for content holes
package errors
