// File: services/identity/firebase.go
package identity

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"pawfolio/config"
	"pawfolio/services/scheduling"
)

// FirebaseRoleVerifier checks admin membership against Firebase Auth
// custom claims. The identity service owns role assignment; this
// verifier only reads it.
type FirebaseRoleVerifier struct {
	Auth *auth.Client
}

// NewFirebaseRoleVerifier initializes the Firebase app from the
// configured service-account credentials.
func NewFirebaseRoleVerifier(ctx context.Context) (*FirebaseRoleVerifier, error) {
	opt := option.WithCredentialsFile(config.AppConfig.FirebaseCredentialsFile)
	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("firebase: error initializing app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase: error getting Auth client: %w", err)
	}
	return &FirebaseRoleVerifier{Auth: client}, nil
}

// VerifyAdminRole resolves the actor in Firebase Auth and requires the
// admin custom claim. Anything short of that is a permission denial.
func (v *FirebaseRoleVerifier) VerifyAdminRole(ctx context.Context, actorID string) error {
	user, err := v.Auth.GetUser(ctx, actorID)
	if err != nil {
		return scheduling.PermissionDeniedError{ActorID: actorID}
	}
	if isAdmin, ok := user.CustomClaims["admin"].(bool); !ok || !isAdmin {
		return scheduling.PermissionDeniedError{ActorID: actorID}
	}
	return nil
}
