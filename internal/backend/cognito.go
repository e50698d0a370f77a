package backend

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	cognito "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/aws/smithy-go"
	"github.com/golang-jwt/jwt/v5"

	"skillbridge/internal/form"
)

// Custom attributes the user pool must define.
const (
	attrRole           = "custom:role"
	attrLocation       = "custom:location"
	attrSkills         = "custom:skills"
	attrOrganization   = "custom:organization"
	attrOrgDescription = "custom:org_description"
)

// CognitoAPI is the subset of the Cognito client used here.
type CognitoAPI interface {
	InitiateAuth(ctx context.Context, in *cognito.InitiateAuthInput, optFns ...func(*cognito.Options)) (*cognito.InitiateAuthOutput, error)
	GetUser(ctx context.Context, in *cognito.GetUserInput, optFns ...func(*cognito.Options)) (*cognito.GetUserOutput, error)
	SignUp(ctx context.Context, in *cognito.SignUpInput, optFns ...func(*cognito.Options)) (*cognito.SignUpOutput, error)
}

// Cognito authenticates against a user pool app client. Accounts are keyed by
// email; username and role live in attributes.
type Cognito struct {
	api      CognitoAPI
	clientID string
}

func NewCognito(api CognitoAPI, clientID string) *Cognito {
	return &Cognito{api: api, clientID: clientID}
}

// NewCognitoFromEnvironment uses the default AWS credential chain.
func NewCognitoFromEnvironment(ctx context.Context, clientID string) (*Cognito, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, err
	}
	return NewCognito(cognito.NewFromConfig(awsCfg), clientID), nil
}

func (c *Cognito) Login(ctx context.Context, req LoginRequest) (LoginResult, error) {
	out, err := c.api.InitiateAuth(ctx, &cognito.InitiateAuthInput{
		AuthFlow: types.AuthFlowTypeUserPasswordAuth,
		ClientId: aws.String(c.clientID),
		AuthParameters: map[string]string{
			"USERNAME": req.Email,
			"PASSWORD": req.Password,
		},
	})
	if err != nil {
		return LoginResult{}, cognitoError(err, "login")
	}
	if out.AuthenticationResult == nil || out.AuthenticationResult.AccessToken == nil {
		return LoginResult{}, rejected(http.StatusUnauthorized, "Additional verification is required to sign in.")
	}

	// The ID token carries the user attributes, so sign-in needs no GetUser
	// round trip.
	claims, err := idTokenClaims(aws.ToString(out.AuthenticationResult.IdToken))
	if err != nil {
		return LoginResult{}, malformed(err, "login")
	}

	email := claims["email"]
	if email == "" {
		email = req.Email
	}
	username := claims["preferred_username"]
	if username == "" {
		username = claims["cognito:username"]
	}

	return LoginResult{
		Email:       email,
		Username:    username,
		Role:        claims[attrRole],
		AccessToken: aws.ToString(out.AuthenticationResult.AccessToken),
	}, nil
}

// idTokenClaims reads the string claims of a Cognito ID token. The token
// comes straight from InitiateAuth, so the signature is not checked.
func idTokenClaims(idToken string) (map[string]string, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(idToken, claims); err != nil {
		return nil, err
	}

	out := make(map[string]string, len(claims))
	for k, v := range claims {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out, nil
}

func (c *Cognito) Register(ctx context.Context, reg form.Registration) error {
	attrs := []types.AttributeType{
		attribute("email", reg.Email),
		attribute("name", reg.FullName),
		attribute("preferred_username", reg.Username),
		attribute(attrRole, string(reg.Role())),
	}

	switch profile := reg.Profile.(type) {
	case form.VolunteerProfile:
		attrs = appendOptional(attrs, attrLocation, profile.Location)
		attrs = appendOptional(attrs, attrSkills, strings.Join(profile.Skills, ", "))
	case form.NGOProfile:
		attrs = appendOptional(attrs, attrLocation, profile.Location)
		attrs = appendOptional(attrs, attrOrganization, profile.OrganizationName)
		attrs = appendOptional(attrs, attrOrgDescription, profile.OrganizationDescription)
		attrs = appendOptional(attrs, "website", profile.Website)
	}

	_, err := c.api.SignUp(ctx, &cognito.SignUpInput{
		ClientId:       aws.String(c.clientID),
		Username:       aws.String(reg.Email),
		Password:       aws.String(reg.Password),
		UserAttributes: attrs,
	})
	if err != nil {
		return cognitoError(err, "register")
	}
	return nil
}

func (c *Cognito) Profile(ctx context.Context, token string) (Profile, error) {
	out, err := c.api.GetUser(ctx, &cognito.GetUserInput{AccessToken: aws.String(token)})
	if err != nil {
		return Profile{}, cognitoError(err, "profile")
	}

	attrs := make(map[string]string, len(out.UserAttributes))
	for _, a := range out.UserAttributes {
		attrs[aws.ToString(a.Name)] = aws.ToString(a.Value)
	}

	username := attrs["preferred_username"]
	if username == "" {
		username = aws.ToString(out.Username)
	}

	return Profile{
		Username:                username,
		Email:                   attrs["email"],
		Role:                    attrs[attrRole],
		FullName:                attrs["name"],
		Location:                attrs[attrLocation],
		Skills:                  splitSkills(attrs[attrSkills]),
		OrganizationName:        attrs[attrOrganization],
		OrganizationDescription: attrs[attrOrgDescription],
		Website:                 attrs["website"],
	}, nil
}

func attribute(name, value string) types.AttributeType {
	return types.AttributeType{Name: aws.String(name), Value: aws.String(value)}
}

func appendOptional(attrs []types.AttributeType, name, value string) []types.AttributeType {
	if value == "" {
		return attrs
	}
	return append(attrs, attribute(name, value))
}

// cognitoError maps service faults to rejections and everything else to
// transport failures. Bad credentials and expired or revoked tokens come back
// as NotAuthorizedException and are reported as 401.
func cognitoError(err error, op string) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		status := http.StatusBadRequest
		switch {
		case apiErr.ErrorFault() == smithy.FaultServer:
			status = http.StatusBadGateway
		case apiErr.ErrorCode() == "NotAuthorizedException":
			status = http.StatusUnauthorized
		}
		return rejected(status, apiErr.ErrorMessage())
	}
	return unreachable(err, op)
}
