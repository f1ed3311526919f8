package leads

import (
	"api/database"
	"api/schemas"
	"api/utils"
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type legacyLead struct {
	ID       int64
	Nome     string
	Cidade   sql.NullString
	Email    sql.NullString
	Telefone sql.NullString
	Origem   sql.NullString
	Status   sql.NullString
	Valor    sql.NullFloat64
	Conexao  sql.NullString
	CriadoEm sql.NullTime
}

// statusLegado traduz os rótulos do CRM antigo para o conjunto canônico.
var statusLegado = map[string]string{
	"novo":           schemas.LEAD_STATUS_NOVO,
	"em atendimento": schemas.LEAD_STATUS_ATENDIMENTO,
	"orcamento":      schemas.LEAD_STATUS_ORCAMENTO,
	"fechado":        schemas.LEAD_STATUS_FECHADO,
	"perdido":        schemas.LEAD_STATUS_PERDIDO,
	"remarketing":    schemas.LEAD_STATUS_REMARKETING,
}

func fetchLegacyLeads() ([]legacyLead, error) {
	mysqlURI := os.Getenv(utils.MYSQL_URI)

	mysqlDB, err := sql.Open("mysql", mysqlURI)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MySQL: %w", err)
	}
	defer mysqlDB.Close()

	mysqlDB.SetConnMaxLifetime(database.MYSQL_CONN_MAX_LIFETIME)
	mysqlDB.SetMaxOpenConns(database.MYSQL_MAX_OPEN_CONNS)
	mysqlDB.SetMaxIdleConns(database.MYSQL_MAX_IDLE_CONNS)

	query := "SELECT id, nome, cidade, email, telefone, origem, status, valor, conexao, criado_em FROM leads"

	rows, err := mysqlDB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query legacy leads from MySQL: %w", err)
	}
	defer rows.Close()

	legacy := []legacyLead{}
	for rows.Next() {
		row := legacyLead{}
		err := rows.Scan(
			&row.ID,
			&row.Nome,
			&row.Cidade,
			&row.Email,
			&row.Telefone,
			&row.Origem,
			&row.Status,
			&row.Valor,
			&row.Conexao,
			&row.CriadoEm,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan legacy lead row: %w", err)
		}
		legacy = append(legacy, row)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating legacy lead rows: %w", err)
	}

	return legacy, nil
}

// ImportLegacy puxa os leads do CRM relacional antigo e faz upsert por
// old_id, mantendo a importação reexecutável.
func ImportLegacy(w http.ResponseWriter, r *http.Request) {
	legacy, err := fetchLegacyLeads()
	if err != nil {
		utils.SendResponse(w, http.StatusBadGateway, "", nil, utils.CANNOT_CONNECT_TO_MYSQL)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), database.MONGO_TIMEOUT)
	defer cancel()

	mongoURI := os.Getenv(utils.MONGODB_URI)
	opts := options.Client().ApplyURI(mongoURI)
	mongoClient, err := mongo.Connect(opts)
	if err != nil {
		utils.SendResponse(w, http.StatusBadGateway, "", nil, utils.CANNOT_CONNECT_TO_MONGODB)
		return
	}
	defer mongoClient.Disconnect(ctx)

	collection := mongoClient.Database(database.GetDB()).Collection(database.COLLECTION_LEADS)

	imported := 0
	now := time.Now()
	for _, row := range legacy {
		status := schemas.LEAD_STATUS_NOVO
		if mapped, ok := statusLegado[normalizeLegacyStatus(row.Status.String)]; ok {
			status = mapped
		}

		createdAt := now
		if row.CriadoEm.Valid {
			createdAt = row.CriadoEm.Time
		}

		oldID := fmt.Sprintf("%d", row.ID)
		setDoc := bson.D{
			{Key: "name", Value: row.Nome},
			{Key: "last_city", Value: row.Cidade.String},
			{Key: "email", Value: row.Email.String},
			{Key: "contact_phone", Value: row.Telefone.String},
			{Key: "source", Value: row.Origem.String},
			{Key: "status", Value: status},
			{Key: "value", Value: row.Valor.Float64},
			{Key: "connection_level", Value: row.Conexao.String},
			{Key: "updated_at", Value: now},
		}
		update := bson.D{
			{Key: "$set", Value: setDoc},
			{Key: "$setOnInsert", Value: bson.D{
				{Key: "old_id", Value: oldID},
				{Key: "is_visible", Value: true},
				{Key: "created_at", Value: createdAt},
			}},
		}

		updateOpts := options.UpdateOne().SetUpsert(true)
		if _, err := collection.UpdateOne(ctx, bson.D{{Key: "old_id", Value: oldID}}, update, updateOpts); err != nil {
			utils.SendResponse(w, http.StatusInternalServerError, "", nil, utils.CANNOT_IMPORT_LEGACY_LEADS)
			return
		}
		imported++
	}

	PublishChange(ctx)

	utils.SendResponse(w, http.StatusOK, "", map[string]any{"imported": imported}, 0)
}

func normalizeLegacyStatus(status string) string {
	status = strings.ToLower(strings.TrimSpace(status))
	return strings.ReplaceAll(status, "ç", "c")
}
