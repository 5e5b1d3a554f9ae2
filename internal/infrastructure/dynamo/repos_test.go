package dynamo

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-otp-register/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDynamo records inputs and returns canned outputs.
type fakeDynamo struct {
	getOut   *dynamodb.GetItemOutput
	putErr   error
	updErr   error
	queryOut []*dynamodb.QueryOutput
	scanOut  []*dynamodb.ScanOutput

	puts    []*dynamodb.PutItemInput
	updates []*dynamodb.UpdateItemInput
	deletes []*dynamodb.DeleteItemInput
	queries []*dynamodb.QueryInput
}

func (f *fakeDynamo) GetItem(context.Context, *dynamodb.GetItemInput, ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	if f.getOut == nil {
		return &dynamodb.GetItemOutput{}, nil
	}
	return f.getOut, nil
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.puts = append(f.puts, in)
	return &dynamodb.PutItemOutput{}, f.putErr
}

func (f *fakeDynamo) UpdateItem(_ context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	f.updates = append(f.updates, in)
	return &dynamodb.UpdateItemOutput{}, f.updErr
}

func (f *fakeDynamo) DeleteItem(_ context.Context, in *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	f.deletes = append(f.deletes, in)
	return &dynamodb.DeleteItemOutput{}, nil
}

func (f *fakeDynamo) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.queries = append(f.queries, in)
	if len(f.queryOut) == 0 {
		return &dynamodb.QueryOutput{}, nil
	}
	out := f.queryOut[0]
	f.queryOut = f.queryOut[1:]
	return out, nil
}

func (f *fakeDynamo) Scan(context.Context, *dynamodb.ScanInput, ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	if len(f.scanOut) == 0 {
		return &dynamodb.ScanOutput{}, nil
	}
	out := f.scanOut[0]
	f.scanOut = f.scanOut[1:]
	return out, nil
}

func userItem(t *testing.T, u domain.User) map[string]types.AttributeValue {
	t.Helper()
	item, err := attributevalue.MarshalMap(u)
	require.NoError(t, err)
	return item
}

// --- users ---

func TestUserRepo_GetByEmail_NotFound(t *testing.T) {
	repo := NewUserRepo(&fakeDynamo{}, "users")
	_, err := repo.GetByEmail(context.Background(), "ghost@example.com")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestUserRepo_GetByEmail_Found(t *testing.T) {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	fake := &fakeDynamo{getOut: &dynamodb.GetItemOutput{Item: userItem(t, domain.User{
		UserID: "u-1", Nama: "Alice", Email: "alice@example.com", PasswordHash: "hash", CreatedAt: created,
	})}}

	u, err := NewUserRepo(fake, "users").GetByEmail(context.Background(), "alice@example.com")

	require.NoError(t, err)
	assert.Equal(t, "hash", u.PasswordHash)
	assert.True(t, created.Equal(u.CreatedAt))
	assert.False(t, u.Verified)
}

func TestUserRepo_Create_Conflict(t *testing.T) {
	fake := &fakeDynamo{putErr: &types.ConditionalCheckFailedException{Message: aws.String("exists")}}

	err := NewUserRepo(fake, "users").Create(context.Background(), &domain.User{Email: "alice@example.com"})

	assert.True(t, errors.Is(err, domain.ErrConflict))
	require.Len(t, fake.puts, 1)
	assert.Equal(t, "attribute_not_exists(#pk)", aws.ToString(fake.puts[0].ConditionExpression))
	assert.Contains(t, fake.puts[0].Item, "password")
}

func TestUserRepo_MarkVerified(t *testing.T) {
	fake := &fakeDynamo{}

	require.NoError(t, NewUserRepo(fake, "users").MarkVerified(context.Background(), "alice@example.com"))

	require.Len(t, fake.updates, 1)
	in := fake.updates[0]
	assert.Equal(t, "SET #f0 = :v0", aws.ToString(in.UpdateExpression))
	assert.Equal(t, fieldVerified, in.ExpressionAttributeNames["#f0"])
	assert.Equal(t, &types.AttributeValueMemberBOOL{Value: true}, in.ExpressionAttributeValues[":v0"])
}

func TestUserRepo_Update_MissingUser(t *testing.T) {
	fake := &fakeDynamo{updErr: &types.ConditionalCheckFailedException{Message: aws.String("missing")}}

	err := NewUserRepo(fake, "users").UpdateCredentials(context.Background(), "ghost@example.com", "Ghost", "hash")

	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestUserRepo_List_Paginates(t *testing.T) {
	fake := &fakeDynamo{scanOut: []*dynamodb.ScanOutput{
		{
			Items:            []map[string]types.AttributeValue{userItem(t, domain.User{Email: "alice@example.com"})},
			LastEvaluatedKey: strKey(fieldEmail, "alice@example.com"),
		},
		{Items: []map[string]types.AttributeValue{userItem(t, domain.User{Email: "bob@example.com", Verified: true})}},
	}}

	users, err := NewUserRepo(fake, "users").List(context.Background())

	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "bob@example.com", users[1].Email)
	assert.True(t, users[1].Verified)
}

// --- otp codes ---

func TestOTPRepo_Insert_SetsTTL(t *testing.T) {
	fake := &fakeDynamo{}
	expires := time.Date(2026, 3, 1, 12, 5, 0, 0, time.UTC)

	err := NewOTPRepo(fake, "otp_codes").Insert(context.Background(), &domain.OTPRecord{
		OTPID: "01J", Email: "alice@example.com", Code: "042042", ExpiresAt: expires, CreatedAt: expires.Add(-5 * time.Minute),
	})

	require.NoError(t, err)
	require.Len(t, fake.puts, 1)
	item := fake.puts[0].Item
	assert.Equal(t, &types.AttributeValueMemberS{Value: "042042"}, item["otp_code"])
	assert.Equal(t, &types.AttributeValueMemberS{Value: "01J"}, item[fieldOTPID])
	ttl, ok := item[fieldTTL].(*types.AttributeValueMemberN)
	require.True(t, ok)
	assert.Equal(t, strconv.FormatInt(expires.Add(expiredRetention).Unix(), 10), ttl.Value)
}

func TestOTPRepo_Latest_Empty(t *testing.T) {
	fake := &fakeDynamo{}

	_, err := NewOTPRepo(fake, "otp_codes").Latest(context.Background(), "alice@example.com")

	assert.True(t, errors.Is(err, domain.ErrNotFound))
	require.Len(t, fake.queries, 1)
	assert.False(t, aws.ToBool(fake.queries[0].ScanIndexForward))
	assert.Equal(t, int32(1), aws.ToInt32(fake.queries[0].Limit))
}

func TestOTPRepo_Latest_DecodesRecord(t *testing.T) {
	item, err := attributevalue.MarshalMap(otpItem{
		OTPRecord: domain.OTPRecord{OTPID: "01J", Email: "alice@example.com", Code: "000123"},
		TTL:       1,
	})
	require.NoError(t, err)
	fake := &fakeDynamo{queryOut: []*dynamodb.QueryOutput{{Items: []map[string]types.AttributeValue{item}}}}

	rec, err := NewOTPRepo(fake, "otp_codes").Latest(context.Background(), "alice@example.com")

	require.NoError(t, err)
	assert.Equal(t, "000123", rec.Code)
	assert.Equal(t, "01J", rec.OTPID)
}

func TestOTPRepo_DeleteByEmail_DeletesEveryItem(t *testing.T) {
	fake := &fakeDynamo{queryOut: []*dynamodb.QueryOutput{
		{
			Items: []map[string]types.AttributeValue{
				compositeKey(fieldEmail, "alice@example.com", fieldOTPID, "01A"),
			},
			LastEvaluatedKey: compositeKey(fieldEmail, "alice@example.com", fieldOTPID, "01A"),
		},
		{
			Items: []map[string]types.AttributeValue{
				compositeKey(fieldEmail, "alice@example.com", fieldOTPID, "01B"),
			},
		},
	}}

	require.NoError(t, NewOTPRepo(fake, "otp_codes").DeleteByEmail(context.Background(), "alice@example.com"))

	require.Len(t, fake.deletes, 2)
	assert.Equal(t, compositeKey(fieldEmail, "alice@example.com", fieldOTPID, "01B"), fake.deletes[1].Key)
}
