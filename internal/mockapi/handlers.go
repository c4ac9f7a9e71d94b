package mockapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/employera/internal/client/models"
	"github.com/labstack/echo/v4"
)

const ctxUserID = "user_id"

type authBody struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	User    models.User   `json:"user"`
	Tokens  models.Tokens `json:"tokens"`
}

type userBody struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	User    models.User `json:"user"`
}

// requireAuth admits requests carrying a valid, current access token.
func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			return c.JSON(http.StatusUnauthorized, detailBody{Detail: msgNoCredentials})
		}

		cl, err := s.tokens.parse(raw, tokenAccess)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, detailBody{Detail: msgTokenInvalid, Code: "token_not_valid"})
		}

		_, gen, err := s.users.get(c.Request().Context(), cl.UserID)
		if err != nil || gen != cl.Generation {
			return c.JSON(http.StatusUnauthorized, detailBody{Detail: msgTokenInvalid, Code: "token_not_valid"})
		}

		c.Set(ctxUserID, cl.UserID)
		return next(c)
	}
}

func userID(c echo.Context) int64 {
	id, _ := c.Get(ctxUserID).(int64)
	return id
}

func (s *Server) issue(c echo.Context, status int, msg string, u models.User, gen int) error {
	access, refresh, err := s.tokens.pair(u.ID, gen)
	if err != nil {
		return fmt.Errorf("mint tokens: %w", err)
	}
	return c.JSON(status, authBody{
		Success: true,
		Message: msg,
		User:    u,
		Tokens:  models.Tokens{Access: access, Refresh: refresh},
	})
}

func (s *Server) register(c echo.Context) error {
	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	if req.Password != req.ConfirmPassword {
		return c.JSON(http.StatusBadRequest, fieldErrors{"password": {msgPasswordsDiffer}})
	}
	if err := s.validate.Struct(req); err != nil {
		if fe, ok := fromValidation(err); ok {
			return c.JSON(http.StatusBadRequest, fe)
		}
		return err
	}

	u, err := s.users.create(c.Request().Context(), req)
	if errors.Is(err, errEmailTaken) {
		return c.JSON(http.StatusBadRequest, fieldErrors{"email": {msgEmailTaken}})
	}
	if err != nil {
		return err
	}

	s.log.Info(c.Request().Context(), "user registered", "id", u.ID, "account_type", u.AccountType)
	return s.issue(c, http.StatusCreated, "User registered successfully", u, 0)
}

func (s *Server) login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, nonFieldError(msgMissingLogin))
	}

	u, gen, err := s.users.authenticate(c.Request().Context(), req.Email, req.Password)
	if errors.Is(err, errBadLogin) {
		return c.JSON(http.StatusBadRequest, nonFieldError(msgBadLogin))
	}
	if err != nil {
		return err
	}
	return s.issue(c, http.StatusOK, "Login successful", u, gen)
}

func (s *Server) logout(c echo.Context) error {
	var req models.LogoutRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	ctx := c.Request().Context()

	cl, err := s.tokens.parse(req.RefreshToken, tokenRefresh)
	if err != nil {
		return c.JSON(http.StatusBadRequest, statusBody{Message: "Invalid token"})
	}
	revoked, err := s.tokens.isBlacklisted(ctx, cl)
	if err != nil {
		return err
	}
	if revoked {
		return c.JSON(http.StatusBadRequest, statusBody{Message: "Invalid token"})
	}
	if err := s.tokens.blacklistToken(ctx, cl); err != nil {
		return err
	}

	return c.JSON(http.StatusResetContent, statusBody{Success: true, Message: "Logout successful"})
}

func (s *Server) verifyToken(c echo.Context) error {
	u, _, err := s.users.get(c.Request().Context(), userID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userBody{Success: true, User: u})
}

func (s *Server) profile(c echo.Context) error {
	u, _, err := s.users.get(c.Request().Context(), userID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}

func (s *Server) updateProfile(c echo.Context) error {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(c.Request().Body).Decode(&raw); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "JSON parse error")
	}

	apply, fe := profilePatch(raw)
	if len(fe) > 0 {
		return c.JSON(http.StatusBadRequest, fe)
	}

	u, err := s.users.update(c.Request().Context(), userID(c), apply)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userBody{Success: true, Message: "Profile updated successfully", User: u})
}

func (s *Server) changePassword(c echo.Context) error {
	var req models.ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	id := userID(c)
	if req.NewPassword != req.ConfirmPassword {
		return c.JSON(http.StatusBadRequest, fieldErrors{"password": {msgPasswordsDiffer}})
	}
	if err := s.validate.Struct(req); err != nil {
		if fe, ok := fromValidation(err); ok {
			return c.JSON(http.StatusBadRequest, fe)
		}
		return err
	}
	ctx := c.Request().Context()
	ok, err := s.users.checkPassword(ctx, id, req.OldPassword)
	if err != nil {
		return err
	}
	if !ok {
		return c.JSON(http.StatusBadRequest, fieldErrors{"old_password": {msgOldPassword}})
	}

	if err := s.users.setPassword(ctx, id, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statusBody{Success: true, Message: "Password changed successfully"})
}

func (s *Server) checkEmail(c echo.Context) error {
	email := c.QueryParam("email")
	if email == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": msgEmailParam})
	}
	exists, err := s.users.exists(c.Request().Context(), email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"exists": exists})
}

// profilePatch decodes the editable fields of a partial update. Unknown
// keys are ignored, read-only ones included.
func profilePatch(raw map[string]json.RawMessage) (func(*models.User), fieldErrors) {
	var (
		fe    = fieldErrors{}
		steps []func(*models.User)
	)

	str := func(key string, limit int, set func(*models.User, string)) {
		v, ok := raw[key]
		if !ok {
			return
		}
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			fe[key] = []string{"Not a valid string."}
			return
		}
		if limit > 0 && len(s) > limit {
			fe[key] = []string{fmt.Sprintf("Ensure this field has no more than %d characters.", limit)}
			return
		}
		steps = append(steps, func(u *models.User) { set(u, s) })
	}

	str("first_name", 30, func(u *models.User, s string) { u.FirstName = s })
	str("last_name", 30, func(u *models.User, s string) { u.LastName = s })
	str("phone", 20, func(u *models.User, s string) { u.Phone = s })
	str("bio", 0, func(u *models.User, s string) { u.Bio = s })
	str("location", 100, func(u *models.User, s string) { u.Location = s })
	str("company_name", 200, func(u *models.User, s string) { u.CompanyName = s })
	str("company_description", 0, func(u *models.User, s string) { u.CompanyDescription = s })

	if v, ok := raw["skills"]; ok {
		var skills []string
		if err := json.Unmarshal(v, &skills); err != nil {
			fe["skills"] = []string{"Value must be valid JSON."}
		} else {
			steps = append(steps, func(u *models.User) { u.Skills = skills })
		}
	}

	if v, ok := raw["availability"]; ok {
		var avail map[string]any
		if err := json.Unmarshal(v, &avail); err != nil {
			fe["availability"] = []string{"Value must be valid JSON."}
		} else {
			steps = append(steps, func(u *models.User) { u.Availability = avail })
		}
	}

	if v, ok := raw["hourly_rate"]; ok {
		rate, err := decodeRate(v)
		if err != nil {
			fe["hourly_rate"] = []string{"A valid number is required."}
		} else {
			steps = append(steps, func(u *models.User) { u.HourlyRate = rate })
		}
	}

	if v, ok := raw["profile_picture"]; ok {
		var pic *string
		if err := json.Unmarshal(v, &pic); err != nil {
			fe["profile_picture"] = []string{"Not a valid string."}
		} else {
			steps = append(steps, func(u *models.User) { u.ProfilePicture = pic })
		}
	}

	return func(u *models.User) {
		for _, step := range steps {
			step(u)
		}
	}, fe
}

// decodeRate accepts a JSON number, a numeric string or null and returns
// the rate with two decimals.
func decodeRate(v json.RawMessage) (*string, error) {
	var x any
	if err := json.Unmarshal(v, &x); err != nil {
		return nil, err
	}

	var f float64
	switch t := x.(type) {
	case nil:
		return nil, nil
	case float64:
		f = t
	case string:
		parsed, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return nil, err
		}
		f = parsed
	default:
		return nil, fmt.Errorf("unsupported rate %T", x)
	}
	if f < 0 {
		return nil, fmt.Errorf("negative rate")
	}

	s := strconv.FormatFloat(f, 'f', 2, 64)
	return &s, nil
}
