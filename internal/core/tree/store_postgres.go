// Copyright (c) 2026 Stamtavla. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tree

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/stamtavla/internal/genealogy"
	"github.com/taibuivan/stamtavla/internal/platform/apperr"
	"github.com/taibuivan/stamtavla/internal/platform/database/schema"
	"github.com/taibuivan/stamtavla/internal/platform/dberr"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(context context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(context context.Context, sql string, arguments ...any) (pgx.Rows, error)
	QueryRow(context context.Context, sql string, arguments ...any) pgx.Row
	SendBatch(context context.Context, batch *pgx.Batch) pgx.BatchResults
}

// PostgresRepository is the [Repository] backed by PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// # SQL

var (
	individualColumns = strings.Join(schema.CoreIndividual.Columns(), ", ")

	selectIndividuals = fmt.Sprintf(`SELECT %s FROM %s`, individualColumns, schema.CoreIndividual.Table)

	insertIndividual = fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
		schema.CoreIndividual.Table, individualColumns, placeholders(1, len(schema.CoreIndividual.Columns())))

	updateIndividual = fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8,
		       %s = $9, %s = $10, %s = $11, %s = $12, %s = $13, %s = $14, %s = now()
		WHERE %s = $1`,
		schema.CoreIndividual.Table,
		schema.CoreIndividual.GivenName, schema.CoreIndividual.FamilyName, schema.CoreIndividual.BirthFamilyName,
		schema.CoreIndividual.Gender, schema.CoreIndividual.DateOfBirth, schema.CoreIndividual.BirthCity,
		schema.CoreIndividual.BirthRegion, schema.CoreIndividual.BirthCongregation, schema.CoreIndividual.DateOfDeath,
		schema.CoreIndividual.DeathCity, schema.CoreIndividual.DeathRegion, schema.CoreIndividual.DeathCongregation,
		schema.CoreIndividual.Story, schema.CoreIndividual.UpdatedAt, schema.CoreIndividual.ID)

	selectMoves = fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s FROM %s
		WHERE %s = ANY($1)
		ORDER BY %s, %s`,
		schema.CoreMove.ID, schema.CoreMove.IndividualID, schema.CoreMove.Date, schema.CoreMove.City,
		schema.CoreMove.Region, schema.CoreMove.Congregation, schema.CoreMove.Note,
		schema.CoreMove.Table, schema.CoreMove.IndividualID,
		schema.CoreMove.IndividualID, schema.CoreMove.Position)

	insertMove = fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
		schema.CoreMove.Table, strings.Join(schema.CoreMove.Columns(), ", "), placeholders(1, len(schema.CoreMove.Columns())))

	relationshipColumns = strings.Join(schema.CoreRelationship.Columns(), ", ")

	selectRelationships = fmt.Sprintf(`SELECT %s FROM %s`, relationshipColumns, schema.CoreRelationship.Table)

	listRelationships = fmt.Sprintf(`%s ORDER BY %s`, selectRelationships, schema.CoreRelationship.Position)

	insertRelationship = fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
		schema.CoreRelationship.Table, relationshipColumns, placeholders(1, len(schema.CoreRelationship.Columns())))
)

// relationshipLock is the transaction-scoped advisory lock key that
// serialises every write adding relationships.
const relationshipLock int64 = 0x5354414d54415641

func lockRelationships(context context.Context, tx pgx.Tx) error {
	_, err := tx.Exec(context, `SELECT pg_advisory_xact_lock($1)`, relationshipLock)
	return err
}

// placeholders returns "$from, ..., $(from+count-1)".
func placeholders(from, count int) string {
	parts := make([]string, count)
	for index := range parts {
		parts[index] = fmt.Sprintf("$%d", from+index)
	}
	return strings.Join(parts, ", ")
}

// # Individuals

func (repository *PostgresRepository) ListIndividuals(context context.Context, limit, offset int) ([]genealogy.Individual, int, error) {
	var total int
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s`, schema.CoreIndividual.Table)
	if err := repository.db.QueryRow(context, countQuery).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "Individual", "count_individuals")
	}

	query := fmt.Sprintf(`%s ORDER BY %s LIMIT $1 OFFSET $2`, selectIndividuals, schema.CoreIndividual.Position)
	individuals, err := queryIndividuals(context, repository.db, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return individuals, total, nil
}

func (repository *PostgresRepository) AllIndividuals(context context.Context) ([]genealogy.Individual, error) {
	query := fmt.Sprintf(`%s ORDER BY %s`, selectIndividuals, schema.CoreIndividual.Position)
	return queryIndividuals(context, repository.db, query)
}

func (repository *PostgresRepository) FindIndividual(context context.Context, id string) (*genealogy.Individual, error) {
	query := fmt.Sprintf(`%s WHERE %s = $1`, selectIndividuals, schema.CoreIndividual.ID)
	individuals, err := queryIndividuals(context, repository.db, query, id)
	if err != nil {
		return nil, err
	}
	if len(individuals) == 0 {
		return nil, apperr.NotFound("Individual")
	}
	return &individuals[0], nil
}

func (repository *PostgresRepository) CreateIndividual(context context.Context, individual genealogy.Individual) error {
	err := pgx.BeginFunc(context, repository.db, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		queueIndividual(batch, individual)
		return runBatch(context, tx, batch)
	})
	return dberr.Wrap(err, "Individual", "create_individual")
}

func (repository *PostgresRepository) UpdateIndividual(context context.Context, individual genealogy.Individual) error {
	err := pgx.BeginFunc(context, repository.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(context, updateIndividual,
			individual.ID, individual.GivenName, individual.FamilyName, individual.BirthFamilyName,
			string(individual.Gender), individual.DateOfBirth, individual.BirthCity, individual.BirthRegion,
			individual.BirthCongregation, individual.DateOfDeath, individual.DeathCity, individual.DeathRegion,
			individual.DeathCongregation, individual.Story)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return pgx.ErrNoRows
		}

		deleteMoves := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CoreMove.Table, schema.CoreMove.IndividualID)
		if _, err := tx.Exec(context, deleteMoves, individual.ID); err != nil {
			return err
		}

		batch := &pgx.Batch{}
		queueMoves(batch, individual)
		return runBatch(context, tx, batch)
	})
	return dberr.Wrap(err, "Individual", "update_individual")
}

func (repository *PostgresRepository) DeleteIndividual(context context.Context, id string) error {
	err := pgx.BeginFunc(context, repository.db, func(tx pgx.Tx) error {
		// parentids has no foreign key; the other references cascade.
		deleteAsParent := fmt.Sprintf(`DELETE FROM %s WHERE $1 = ANY(%s)`,
			schema.CoreRelationship.Table, schema.CoreRelationship.ParentIDs)
		if _, err := tx.Exec(context, deleteAsParent, id); err != nil {
			return err
		}

		deleteIndividual := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CoreIndividual.Table, schema.CoreIndividual.ID)
		tag, err := tx.Exec(context, deleteIndividual, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return pgx.ErrNoRows
		}
		return nil
	})
	return dberr.Wrap(err, "Individual", "delete_individual")
}

// queryIndividuals runs an individual SELECT and attaches the moves.
func queryIndividuals(context context.Context, db querier, query string, arguments ...any) ([]genealogy.Individual, error) {
	rows, err := db.Query(context, query, arguments...)
	if err != nil {
		return nil, dberr.Wrap(err, "Individual", "query_individuals")
	}
	defer rows.Close()

	individuals := make([]genealogy.Individual, 0)
	for rows.Next() {
		var individual genealogy.Individual
		var gender string
		if err := rows.Scan(
			&individual.ID, &individual.GivenName, &individual.FamilyName, &individual.BirthFamilyName, &gender,
			&individual.DateOfBirth, &individual.BirthCity, &individual.BirthRegion, &individual.BirthCongregation,
			&individual.DateOfDeath, &individual.DeathCity, &individual.DeathRegion, &individual.DeathCongregation,
			&individual.Story,
		); err != nil {
			return nil, dberr.Wrap(err, "Individual", "scan_individual")
		}
		individual.Gender = genealogy.ParseGender(gender)
		individuals = append(individuals, individual)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "Individual", "iterate_individuals")
	}
	rows.Close()

	if len(individuals) == 0 {
		return individuals, nil
	}

	ids := make([]string, len(individuals))
	for index, individual := range individuals {
		ids[index] = individual.ID
	}
	moves, err := queryMoves(context, db, ids)
	if err != nil {
		return nil, err
	}
	for index := range individuals {
		individuals[index].Moves = moves[individuals[index].ID]
	}
	return individuals, nil
}

func queryMoves(context context.Context, db querier, individualIDs []string) (map[string][]genealogy.Move, error) {
	rows, err := db.Query(context, selectMoves, individualIDs)
	if err != nil {
		return nil, dberr.Wrap(err, "Move", "query_moves")
	}
	defer rows.Close()

	moves := make(map[string][]genealogy.Move)
	for rows.Next() {
		var move genealogy.Move
		var individualID string
		if err := rows.Scan(&move.ID, &individualID, &move.Date, &move.City, &move.Region, &move.Congregation, &move.Note); err != nil {
			return nil, dberr.Wrap(err, "Move", "scan_move")
		}
		moves[individualID] = append(moves[individualID], move)
	}
	return moves, dberr.Wrap(rows.Err(), "Move", "iterate_moves")
}

// # Relationships

func (repository *PostgresRepository) ListRelationships(context context.Context) ([]genealogy.Relationship, error) {
	return queryRelationships(context, repository.db, listRelationships)
}

func (repository *PostgresRepository) FindRelationship(context context.Context, id string) (*genealogy.Relationship, error) {
	query := fmt.Sprintf(`%s WHERE %s = $1`, selectRelationships, schema.CoreRelationship.ID)
	relationships, err := queryRelationships(context, repository.db, query, id)
	if err != nil {
		return nil, err
	}
	if len(relationships) == 0 {
		return nil, apperr.NotFound("Relationship")
	}
	return &relationships[0], nil
}

func (repository *PostgresRepository) CreateRelationship(context context.Context, relationship genealogy.Relationship, check RelationshipCheck) error {
	err := pgx.BeginFunc(context, repository.db, func(tx pgx.Tx) error {
		if err := lockRelationships(context, tx); err != nil {
			return err
		}
		if check != nil {
			existing, err := queryRelationships(context, tx, listRelationships)
			if err != nil {
				return err
			}
			if err := check(existing); err != nil {
				return err
			}
		}
		_, err := tx.Exec(context, insertRelationship, relationshipArguments(relationship)...)
		return err
	})
	return dberr.Wrap(err, "Relationship", "create_relationship")
}

func (repository *PostgresRepository) DeleteRelationship(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CoreRelationship.Table, schema.CoreRelationship.ID)
	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "Relationship", "delete_relationship")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Relationship")
	}
	return nil
}

func queryRelationships(context context.Context, db querier, query string, arguments ...any) ([]genealogy.Relationship, error) {
	rows, err := db.Query(context, query, arguments...)
	if err != nil {
		return nil, dberr.Wrap(err, "Relationship", "query_relationships")
	}
	defer rows.Close()

	relationships := make([]genealogy.Relationship, 0)
	for rows.Next() {
		var relationship genealogy.Relationship
		var kind string
		var person1, person2, child *string
		if err := rows.Scan(
			&relationship.ID, &kind, &person1, &person2,
			&relationship.WeddingDate, &relationship.WeddingCity, &relationship.WeddingRegion, &relationship.WeddingCongregation,
			&relationship.ParentIDs, &child,
		); err != nil {
			return nil, dberr.Wrap(err, "Relationship", "scan_relationship")
		}
		relationship.Kind = genealogy.RelationshipKind(kind)
		relationship.Person1ID = deref(person1)
		relationship.Person2ID = deref(person2)
		relationship.ChildID = deref(child)
		if len(relationship.ParentIDs) == 0 {
			relationship.ParentIDs = nil
		}
		relationships = append(relationships, relationship)
	}
	return relationships, dberr.Wrap(rows.Err(), "Relationship", "iterate_relationships")
}

// # Bulk

func (repository *PostgresRepository) Replace(context context.Context, individuals []genealogy.Individual, relationships []genealogy.Relationship) error {
	err := pgx.BeginFunc(context, repository.db, func(tx pgx.Tx) error {
		if err := lockRelationships(context, tx); err != nil {
			return err
		}
		for _, table := range []string{schema.CoreRelationship.Table, schema.CoreMove.Table, schema.CoreIndividual.Table} {
			if _, err := tx.Exec(context, "DELETE FROM "+table); err != nil {
				return err
			}
		}
		return runBatch(context, tx, bulkBatch(individuals, relationships))
	})
	return dberr.Wrap(err, "Tree", "replace_tree")
}

func (repository *PostgresRepository) Append(context context.Context, individuals []genealogy.Individual, admit RelationshipFilter) error {
	err := pgx.BeginFunc(context, repository.db, func(tx pgx.Tx) error {
		if err := lockRelationships(context, tx); err != nil {
			return err
		}
		existing, err := queryRelationships(context, tx, listRelationships)
		if err != nil {
			return err
		}
		return runBatch(context, tx, bulkBatch(individuals, admit(existing)))
	})
	return dberr.Wrap(err, "Tree", "append_tree")
}

// bulkBatch queues inserts in dependency order. Statements in a batch run
// sequentially, so serial positions follow the slice order.
func bulkBatch(individuals []genealogy.Individual, relationships []genealogy.Relationship) *pgx.Batch {
	batch := &pgx.Batch{}
	for _, individual := range individuals {
		queueIndividual(batch, individual)
	}
	for _, relationship := range relationships {
		batch.Queue(insertRelationship, relationshipArguments(relationship)...)
	}
	return batch
}

func queueIndividual(batch *pgx.Batch, individual genealogy.Individual) {
	batch.Queue(insertIndividual,
		individual.ID, individual.GivenName, individual.FamilyName, individual.BirthFamilyName,
		string(individual.Gender), individual.DateOfBirth, individual.BirthCity, individual.BirthRegion,
		individual.BirthCongregation, individual.DateOfDeath, individual.DeathCity, individual.DeathRegion,
		individual.DeathCongregation, individual.Story)
	queueMoves(batch, individual)
}

func queueMoves(batch *pgx.Batch, individual genealogy.Individual) {
	for position, move := range individual.Moves {
		batch.Queue(insertMove, move.ID, individual.ID, position, move.Date, move.City, move.Region, move.Congregation, move.Note)
	}
}

func runBatch(context context.Context, db querier, batch *pgx.Batch) error {
	if batch.Len() == 0 {
		return nil
	}
	results := db.SendBatch(context, batch)
	for index := 0; index < batch.Len(); index++ {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return err
		}
	}
	return results.Close()
}

func relationshipArguments(relationship genealogy.Relationship) []any {
	parentIDs := relationship.ParentIDs
	if parentIDs == nil {
		parentIDs = []string{}
	}
	return []any{
		relationship.ID, string(relationship.Kind), nullable(relationship.Person1ID), nullable(relationship.Person2ID),
		relationship.WeddingDate, relationship.WeddingCity, relationship.WeddingRegion, relationship.WeddingCongregation,
		parentIDs, nullable(relationship.ChildID),
	}
}

func nullable(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
