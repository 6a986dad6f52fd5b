/*
Package rds implements dataapi.API directly against the AWS RDS Data API.

It is the transport to use outside a waPC host: wrap an *rdsdata.Client (or
anything with the same four methods) and hand the result to database.New.

	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
	  return err
	}
	api := rds.NewFromConfig(cfg)

Wire fields map one to one onto the SDK's types.Field union. Blob and array
members have no scalar form and fail with dataapi.ErrUnsupportedField.
*/
package rds
