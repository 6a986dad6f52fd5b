package rds

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rdsdata"
	"github.com/aws/aws-sdk-go-v2/service/rdsdata/types"
	"github.com/risparfinance/camus/dataapi"
)

// Client is the subset of *rdsdata.Client used by API.
type Client interface {
	ExecuteStatement(ctx context.Context, params *rdsdata.ExecuteStatementInput, optFns ...func(*rdsdata.Options)) (*rdsdata.ExecuteStatementOutput, error)
	BeginTransaction(ctx context.Context, params *rdsdata.BeginTransactionInput, optFns ...func(*rdsdata.Options)) (*rdsdata.BeginTransactionOutput, error)
	CommitTransaction(ctx context.Context, params *rdsdata.CommitTransactionInput, optFns ...func(*rdsdata.Options)) (*rdsdata.CommitTransactionOutput, error)
	RollbackTransaction(ctx context.Context, params *rdsdata.RollbackTransactionInput, optFns ...func(*rdsdata.Options)) (*rdsdata.RollbackTransactionOutput, error)
}

var _ Client = (*rdsdata.Client)(nil)

// API adapts a Client to dataapi.API.
type API struct {
	client Client
}

var _ dataapi.API = (*API)(nil)

// New wraps client.
func New(client Client) *API {
	return &API{client: client}
}

// NewFromConfig builds an rdsdata client from cfg and wraps it.
func NewFromConfig(cfg aws.Config, optFns ...func(*rdsdata.Options)) *API {
	return New(rdsdata.NewFromConfig(cfg, optFns...))
}

// ExecuteStatement runs a statement.
func (a *API) ExecuteStatement(ctx context.Context, in *dataapi.ExecuteStatementInput) (*dataapi.ExecuteStatementOutput, error) {
	params := make([]types.SqlParameter, len(in.Parameters))
	for i, p := range in.Parameters {
		params[i] = types.SqlParameter{Name: aws.String(p.Name), Value: toField(p.Value)}
	}

	req := &rdsdata.ExecuteStatementInput{
		SecretArn:             aws.String(in.SecretArn),
		ResourceArn:           aws.String(in.ResourceArn),
		Database:              optional(in.Database),
		Sql:                   aws.String(in.SQL),
		Parameters:            params,
		TransactionId:         optional(in.TransactionID),
		IncludeResultMetadata: in.IncludeResultMetadata,
	}

	resp, err := a.client.ExecuteStatement(ctx, req)
	if err != nil {
		return nil, err
	}

	out := &dataapi.ExecuteStatementOutput{NumberOfRecordsUpdated: resp.NumberOfRecordsUpdated}
	for _, m := range resp.ColumnMetadata {
		out.ColumnMetadata = append(out.ColumnMetadata, dataapi.ColumnMetadata{Label: aws.ToString(m.Label)})
	}
	if resp.Records != nil {
		out.Records = make([][]dataapi.Field, len(resp.Records))
		for i, row := range resp.Records {
			fields := make([]dataapi.Field, len(row))
			for j, f := range row {
				if fields[j], err = fromField(f); err != nil {
					return nil, fmt.Errorf("row %d column %d: %w", i, j, err)
				}
			}
			out.Records[i] = fields
		}
	}
	return out, nil
}

// BeginTransaction starts a transaction.
func (a *API) BeginTransaction(ctx context.Context, in *dataapi.BeginTransactionInput) (*dataapi.BeginTransactionOutput, error) {
	resp, err := a.client.BeginTransaction(ctx, &rdsdata.BeginTransactionInput{
		SecretArn:   aws.String(in.SecretArn),
		ResourceArn: aws.String(in.ResourceArn),
		Database:    optional(in.Database),
	})
	if err != nil {
		return nil, err
	}
	return &dataapi.BeginTransactionOutput{TransactionID: aws.ToString(resp.TransactionId)}, nil
}

// CommitTransaction commits a transaction.
func (a *API) CommitTransaction(ctx context.Context, in *dataapi.CommitTransactionInput) (*dataapi.CommitTransactionOutput, error) {
	resp, err := a.client.CommitTransaction(ctx, &rdsdata.CommitTransactionInput{
		SecretArn:     aws.String(in.SecretArn),
		ResourceArn:   aws.String(in.ResourceArn),
		TransactionId: aws.String(in.TransactionID),
	})
	if err != nil {
		return nil, err
	}
	return &dataapi.CommitTransactionOutput{TransactionStatus: aws.ToString(resp.TransactionStatus)}, nil
}

// RollbackTransaction rolls back a transaction.
func (a *API) RollbackTransaction(ctx context.Context, in *dataapi.RollbackTransactionInput) (*dataapi.RollbackTransactionOutput, error) {
	resp, err := a.client.RollbackTransaction(ctx, &rdsdata.RollbackTransactionInput{
		SecretArn:     aws.String(in.SecretArn),
		ResourceArn:   aws.String(in.ResourceArn),
		TransactionId: aws.String(in.TransactionID),
	})
	if err != nil {
		return nil, err
	}
	return &dataapi.RollbackTransactionOutput{TransactionStatus: aws.ToString(resp.TransactionStatus)}, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return aws.String(s)
}

func toField(f dataapi.Field) types.Field {
	switch {
	case f.StringValue != nil:
		return &types.FieldMemberStringValue{Value: *f.StringValue}
	case f.LongValue != nil:
		return &types.FieldMemberLongValue{Value: *f.LongValue}
	case f.BooleanValue != nil:
		return &types.FieldMemberBooleanValue{Value: *f.BooleanValue}
	case f.DoubleValue != nil:
		return &types.FieldMemberDoubleValue{Value: *f.DoubleValue}
	default:
		return &types.FieldMemberIsNull{Value: true}
	}
}

func fromField(f types.Field) (dataapi.Field, error) {
	switch v := f.(type) {
	case *types.FieldMemberStringValue:
		return dataapi.StringField(v.Value), nil
	case *types.FieldMemberLongValue:
		return dataapi.LongField(v.Value), nil
	case *types.FieldMemberBooleanValue:
		return dataapi.BooleanField(v.Value), nil
	case *types.FieldMemberDoubleValue:
		return dataapi.DoubleField(v.Value), nil
	case *types.FieldMemberIsNull:
		if v.Value {
			return dataapi.NullField(), nil
		}
		return dataapi.Field{}, fmt.Errorf("%w: isNull false", dataapi.ErrUnsupportedField)
	case *types.FieldMemberBlobValue:
		return dataapi.Field{}, fmt.Errorf("%w: blob", dataapi.ErrUnsupportedField)
	case *types.FieldMemberArrayValue:
		return dataapi.Field{}, fmt.Errorf("%w: array", dataapi.ErrUnsupportedField)
	default:
		return dataapi.Field{}, fmt.Errorf("%w: %T", dataapi.ErrUnsupportedField, f)
	}
}
