package backend

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	cognito "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/aws/smithy-go"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillbridge/internal/form"
)

type fakeCognito struct {
	authErr  error
	idToken  string
	signUp   *cognito.SignUpInput
	users    map[string][]types.AttributeType
	getUsers int
}

func (f *fakeCognito) InitiateAuth(_ context.Context, in *cognito.InitiateAuthInput, _ ...func(*cognito.Options)) (*cognito.InitiateAuthOutput, error) {
	if f.authErr != nil {
		return nil, f.authErr
	}
	return &cognito.InitiateAuthOutput{
		AuthenticationResult: &types.AuthenticationResultType{
			AccessToken: aws.String("token-" + in.AuthParameters["USERNAME"]),
			IdToken:     aws.String(f.idToken),
		},
	}, nil
}

func (f *fakeCognito) GetUser(_ context.Context, in *cognito.GetUserInput, _ ...func(*cognito.Options)) (*cognito.GetUserOutput, error) {
	f.getUsers++
	attrs, ok := f.users[aws.ToString(in.AccessToken)]
	if !ok {
		return nil, &smithy.GenericAPIError{Code: "NotAuthorizedException", Message: "Invalid Access Token", Fault: smithy.FaultClient}
	}
	return &cognito.GetUserOutput{Username: aws.String("uuid-1"), UserAttributes: attrs}, nil
}

func (f *fakeCognito) SignUp(_ context.Context, in *cognito.SignUpInput, _ ...func(*cognito.Options)) (*cognito.SignUpOutput, error) {
	f.signUp = in
	return &cognito.SignUpOutput{UserConfirmed: true}, nil
}

func signedIDToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test"))
	require.NoError(t, err)
	return token
}

func TestCognitoLogin(t *testing.T) {
	fake := &fakeCognito{idToken: signedIDToken(t, jwt.MapClaims{
		"email":              "a@b.co",
		"preferred_username": "ann",
		attrRole:             "NGO",
		"exp":                float64(4102444800),
	})}

	res, err := NewCognito(fake, "client").Login(context.Background(), LoginRequest{Email: "a@b.co", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, LoginResult{Email: "a@b.co", Username: "ann", Role: "NGO", AccessToken: "token-a@b.co"}, res)
	assert.Zero(t, fake.getUsers, "sign-in is a single request")
}

func TestCognitoLoginFallsBackToCognitoUsername(t *testing.T) {
	fake := &fakeCognito{idToken: signedIDToken(t, jwt.MapClaims{"cognito:username": "uuid-1"})}

	res, err := NewCognito(fake, "client").Login(context.Background(), LoginRequest{Email: "a@b.co", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "uuid-1", res.Username)
	assert.Equal(t, "a@b.co", res.Email)
}

func TestCognitoLoginWithoutIDToken(t *testing.T) {
	_, err := NewCognito(&fakeCognito{}, "client").Login(context.Background(), LoginRequest{Email: "a@b.co"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformed))
}

func TestCognitoProfile(t *testing.T) {
	fake := &fakeCognito{users: map[string][]types.AttributeType{
		"tok": {
			attribute("email", "a@b.co"),
			attribute("name", "Ann"),
			attribute(attrRole, "Volunteer"),
			attribute(attrSkills, "Marketing, Photography"),
		},
	}}

	p, err := NewCognito(fake, "client").Profile(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "uuid-1", p.Username)
	assert.Equal(t, "Ann", p.FullName)
	assert.Equal(t, []string{"Marketing", "Photography"}, p.Skills)
}

func TestCognitoProfileRevokedTokenIsUnauthorized(t *testing.T) {
	_, err := NewCognito(&fakeCognito{}, "client").Profile(context.Background(), "revoked")
	require.Error(t, err)

	var rej *RejectionError
	require.True(t, errors.As(err, &rej))
	assert.Equal(t, http.StatusUnauthorized, rej.Status)
}

func TestCognitoLoginRejected(t *testing.T) {
	fake := &fakeCognito{authErr: &smithy.GenericAPIError{
		Code: "NotAuthorizedException", Message: "Incorrect username or password.", Fault: smithy.FaultClient,
	}}

	_, err := NewCognito(fake, "client").Login(context.Background(), LoginRequest{Email: "a@b.co", Password: "pw"})
	require.Error(t, err)
	assert.True(t, IsRejection(err))
	assert.Equal(t, "Incorrect username or password.", Message(err, "fallback"))
}

func TestCognitoTransportFailure(t *testing.T) {
	fake := &fakeCognito{authErr: errors.New("dial tcp: connection refused")}

	_, err := NewCognito(fake, "client").Login(context.Background(), LoginRequest{})
	assert.True(t, errors.Is(err, ErrUnreachable))
}

func TestCognitoRegisterAttributes(t *testing.T) {
	fake := &fakeCognito{}
	err := NewCognito(fake, "client").Register(context.Background(), form.Registration{
		Username: "ann", Email: "a@b.co", Password: "Abcdef1!", FullName: "Ann",
		Profile: form.VolunteerProfile{Skills: []string{"Marketing"}},
	})
	require.NoError(t, err)
	require.NotNil(t, fake.signUp)
	assert.Equal(t, "a@b.co", aws.ToString(fake.signUp.Username))
	assert.Equal(t, "client", aws.ToString(fake.signUp.ClientId))

	attrs := map[string]string{}
	for _, a := range fake.signUp.UserAttributes {
		attrs[aws.ToString(a.Name)] = aws.ToString(a.Value)
	}
	assert.Equal(t, "Volunteer", attrs[attrRole])
	assert.Equal(t, "Marketing", attrs[attrSkills])
	assert.Equal(t, "ann", attrs["preferred_username"])
	assert.NotContains(t, attrs, attrLocation)
}
