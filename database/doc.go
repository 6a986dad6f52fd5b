/*
Package database runs SQL statements against a remote Data API and returns
the results as record collections.

A Database holds the connection identity (secret ARN, cluster ARN, database
name) and the dataapi.API transport to use:

	api, _ := hostcall.New(hostcall.Config{})
	db, err := database.New(database.Config{
	  SecretArn:   secretArn,
	  ResourceArn: clusterArn,
	  Database:    "app",
	  API:         api,
	})

	rows, err := db.Execute(ctx, "SELECT id, email FROM users WHERE id = :id", map[string]any{"id": 1})
	user, err := rows.One()

Statements that return rows produce a lazy record.Collection; each wire row
becomes a Record only when the collection reaches it. Statements that only
change rows produce a single record with one column, records_updated.

Transaction runs a function inside a remote transaction. Statements issued
through the same Database while the function runs join the transaction. The
transaction commits when the function returns nil and rolls back when it
returns an error or panics. Only one transaction can be open per Database.
*/
package database
