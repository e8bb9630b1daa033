package db

const sqliteUsers = `
CREATE TABLE IF NOT EXISTS users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    username TEXT UNIQUE NOT NULL,
    password TEXT NOT NULL
);
`

const sqliteTasks = `
CREATE TABLE IF NOT EXISTS tasks (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    task_description TEXT NOT NULL,
    is_completed BOOLEAN NOT NULL DEFAULT 0,
    user_id INTEGER NOT NULL REFERENCES users(id)
);
`

const sqliteActivity = `
CREATE TABLE IF NOT EXISTS activity_log (
    id TEXT PRIMARY KEY,
    occurred_at TIMESTAMP NOT NULL,
    type TEXT NOT NULL,
    user_id INTEGER NOT NULL DEFAULT 0,
    message TEXT NOT NULL,
    meta TEXT
);
`

const mysqlUsers = `
CREATE TABLE IF NOT EXISTS users (
    id INT AUTO_INCREMENT PRIMARY KEY,
    username VARCHAR(255) NOT NULL UNIQUE,
    password VARCHAR(255) NOT NULL
)`

const mysqlTasks = `
CREATE TABLE IF NOT EXISTS tasks (
    id INT AUTO_INCREMENT PRIMARY KEY,
    task_description VARCHAR(1024) NOT NULL,
    is_completed BOOLEAN NOT NULL DEFAULT FALSE,
    user_id INT NOT NULL,
    FOREIGN KEY (user_id) REFERENCES users(id)
)`

const mysqlActivity = `
CREATE TABLE IF NOT EXISTS activity_log (
    id CHAR(36) PRIMARY KEY,
    occurred_at DATETIME(6) NOT NULL,
    type VARCHAR(64) NOT NULL,
    user_id INT NOT NULL DEFAULT 0,
    message VARCHAR(1024) NOT NULL,
    meta TEXT
)`

var schemas = map[string][]string{
	DriverSQLite: {sqliteUsers, sqliteTasks, sqliteActivity},
	DriverMySQL:  {mysqlUsers, mysqlTasks, mysqlActivity},
}
