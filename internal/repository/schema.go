package repository

// CurrentSchemaVersion is the version every database is brought to on open.
const CurrentSchemaVersion = 4

// Schema of a database created from scratch. The version table comes last so
// an interrupted bootstrap is retried on the next start.
var bootstrapStatements = []string{
	`CREATE TABLE IF NOT EXISTS categories (
		id integer primary key,
		name varchar2(500),
		color_code varchar2(50),
		category_order integer
	)`,
	`CREATE TABLE IF NOT EXISTS activities (
		id integer primary key,
		name varchar2(500),
		activity_order integer,
		deleted integer,
		category_id integer
	)`,
	`CREATE TABLE IF NOT EXISTS facts (
		id integer primary key,
		activity_id integer,
		start_time timestamp,
		end_time timestamp
	)`,
	`CREATE TABLE version (version integer)`,
}

// Version 1 -> 2: fact_date and fact_time become start_time and end_time.
var splitFactTimeStatements = []string{
	`CREATE TABLE facts_new (
		id integer primary key,
		activity_id integer,
		start_time varchar2(12),
		end_time varchar2(12)
	)`,
	`INSERT INTO facts_new (id, activity_id, start_time)
	      SELECT id, activity_id, fact_date || fact_time
	        FROM facts`,
	`DROP TABLE facts`,
	`ALTER TABLE facts_new RENAME TO facts`,
}

const queryLegacyFacts = `
	SELECT id, start_time, substr(start_time, 1, 8) AS start_date
	  FROM facts
  ORDER BY start_time`

// Version 2 -> 3: YYYYMMDDHHmm text becomes YYYY-MM-DD HH:MM:00.
var canonicalFactTimeStatements = []string{
	`CREATE TABLE facts_new (
		id integer primary key,
		activity_id integer,
		start_time timestamp,
		end_time timestamp
	)`,
	`INSERT INTO facts_new (id, activity_id, start_time, end_time)
	      SELECT id, activity_id,
	             substr(start_time, 1, 4) || '-'
	             || substr(start_time, 5, 2) || '-'
	             || substr(start_time, 7, 2) || ' '
	             || substr(start_time, 9, 2) || ':'
	             || substr(start_time, 11, 2) || ':00',
	             substr(end_time, 1, 4) || '-'
	             || substr(end_time, 5, 2) || '-'
	             || substr(end_time, 7, 2) || ' '
	             || substr(end_time, 9, 2) || ':'
	             || substr(end_time, 11, 2) || ':00'
	        FROM facts`,
	`DROP TABLE facts`,
	`ALTER TABLE facts_new RENAME TO facts`,
}

// Version 3 -> 4 statements, run in this order by migrateToV4.
const (
	createCategoriesTable = `
		CREATE TABLE categories (
			id integer primary key,
			name varchar2(500),
			color_code varchar2(50),
			category_order integer
		)`

	insertLegacyCategory = `
		INSERT INTO categories (id, name, category_order)
		     VALUES (?, ?, ?)`

	queryActiveWorkActivities = `
		SELECT count(*)
		  FROM activities
		 WHERE deleted IS NULL AND work = 1`

	addActivityCategoryColumn = `ALTER TABLE activities ADD COLUMN category_id integer`

	purgeUnusedDeletedActivities = `
		DELETE FROM activities
		      WHERE deleted = 1
		        AND id NOT IN (SELECT activity_id FROM facts WHERE activity_id IS NOT NULL)`

	assignLegacyCategory = `
		UPDATE activities
		   SET category_id = ?
		 WHERE deleted IS NULL
		   AND work = ?`

	unsortUncategorizedActivities = `
		UPDATE activities
		   SET category_id = ?
		 WHERE category_id IS NULL`
)

// Drops the work column and forgets the deleted flag.
var rebuildActivitiesStatements = []string{
	`CREATE TABLE activities_new (
		id integer primary key,
		name varchar2(500),
		activity_order integer,
		deleted integer,
		category_id integer
	)`,
	`INSERT INTO activities_new (id, name, activity_order, category_id)
	      SELECT id, name, activity_order, category_id
	        FROM activities`,
	`DROP TABLE activities`,
	`ALTER TABLE activities_new RENAME TO activities`,
}

const (
	queryVersion  = `SELECT version FROM version LIMIT 1`
	updateVersion = `UPDATE version SET version = ?`
	insertVersion = `INSERT INTO version (version) VALUES (?)`
)
