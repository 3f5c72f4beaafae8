package auth

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/georgemunganga/autek-admin/internal/apiclient"
	"github.com/georgemunganga/autek-admin/internal/apperr"
	"github.com/georgemunganga/autek-admin/internal/modules/session"
)

type service struct {
	client    *apiclient.Client
	loginPath string
	logger    *slog.Logger
}

// NewService creates an auth service that posts credentials to loginPath on
// the primary API.
func NewService(client *apiclient.Client, loginPath string, logger *slog.Logger) Service {
	return &service{client: client, loginPath: loginPath, logger: logger}
}

// loginResponse accepts the token and profile under either of the names the
// API has used for them.
type loginResponse struct {
	Token       string           `json:"token"`
	AccessToken string           `json:"access_token"`
	User        apiclient.Record `json:"user"`
	Admin       apiclient.Record `json:"admin"`
}

func (s *service) Login(ctx context.Context, c Credentials) (*Identity, error) {
	var out loginResponse
	body := apiclient.JSON(map[string]any{"email": c.Email, "password": c.Password})
	if err := s.client.Do(ctx, http.MethodPost, s.loginPath, nil, body, &out); err != nil {
		// A 401 here means bad credentials, not an expired session.
		if apperr.IsUnauthorized(err) {
			return nil, apperr.InvalidErr(apperr.PublicMessage(err, "Invalid email or password"))
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	id := &Identity{Token: out.Token}
	if id.Token == "" {
		id.Token = out.AccessToken
	}
	if id.Token == "" {
		return nil, apperr.Wrap(fmt.Errorf("login: response carried no token"))
	}
	rec := out.User
	if rec == nil {
		rec = out.Admin
	}
	id.Profile = profileOf(rec)
	if id.Profile.Email == "" {
		id.Profile.Email = c.Email
	}
	s.logger.InfoContext(ctx, "administrator signed in", slog.String("admin_id", id.Profile.ID))
	return id, nil
}

// profileOf reads the administrator record leniently: ids arrive as numbers
// or strings depending on the endpoint.
func profileOf(rec apiclient.Record) session.Profile {
	return session.Profile{
		ID:        rec.ID(),
		FirstName: apiclient.Text(rec["first_name"]),
		LastName:  apiclient.Text(rec["last_name"]),
		Email:     apiclient.Text(rec["email"]),
		IsCreator: apiclient.Truthy(rec["is_creator"]),
		ImageURL:  apiclient.Text(rec["image_url"]),
	}
}
